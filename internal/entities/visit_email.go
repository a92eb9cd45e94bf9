package entities

type VisitEmailData struct {
	VisitorName        string
	VisitCode          string
	ListingID          int
	StartTimeFormatted string
	EndTimeFormatted   string
	CurrentYear        int
	Language           string
	Status             string
}
