package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"inmovisitas/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendVisitEmail emails the visitor about their visit: confirmation,
// reminder or cancellation depending on status. Sending happens in the
// background; a failure is logged, never surfaced to the visitor.
func (s *SenderService) SendVisitEmail(visit entities.VisitResponse, status string) {
	emailData := entities.VisitEmailData{
		VisitorName:        visit.VisitorName,
		VisitCode:          visit.Code,
		ListingID:          visit.ListingID,
		StartTimeFormatted: visit.StartTime.Format("02 Jan 2006 15:04"),
		EndTimeFormatted:   visit.EndTime.Format("02 Jan 2006 15:04"),
		CurrentYear:        time.Now().Year(),
		Language:           visit.Language,
		Status:             status,
	}

	var emailSubject, plainTextBody string
	switch visit.Language {
	case "es":
		emailSubject = fmt.Sprintf("Tu visita está %s - Código: %s", status, emailData.VisitCode)
		plainTextBody = fmt.Sprintf(
			"Hola %s,\n\nTu visita al inmueble %d está %s.\n\n"+
				"Detalles de la visita:\n"+
				"Código de visita: %s\n"+
				"Inicio: %s\n"+
				"Fin: %s\n\n"+
				"Gracias por usar InmoVisitas.\n\n"+
				"InmoVisitas. Todos los derechos reservados.",
			emailData.VisitorName, emailData.ListingID, status,
			emailData.VisitCode, emailData.StartTimeFormatted, emailData.EndTimeFormatted,
		)
	default:
		emailSubject = fmt.Sprintf("Your property visit is %s - Code: %s", status, emailData.VisitCode)
		plainTextBody = fmt.Sprintf(
			"Hello %s,\n\nYour visit to property %d is %s.\n\n"+
				"Visit details:\n"+
				"Visit code: %s\n"+
				"Start: %s\n"+
				"End: %s\n\n"+
				"Thank you for using InmoVisitas.\n\n"+
				"InmoVisitas. All rights reserved.",
			emailData.VisitorName, emailData.ListingID, status,
			emailData.VisitCode, emailData.StartTimeFormatted, emailData.EndTimeFormatted,
		)
	}

	var htmlBody string
	tmplPath := filepath.Join("internal", "templates", "visit_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: could not parse visit email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: could not render visit email template for visit %s: %v", emailData.VisitCode, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): email for visit %s failed: %v", emailData.VisitCode, errEmail)
		}
	}(visit.VisitorEmail, emailData.VisitorName, emailSubject, plainTextBody, htmlBody)
}

// SendVisitSMS texts the visitor a short version of the same notice.
func (s *SenderService) SendVisitSMS(visit entities.VisitResponse, status string) {
	var smsMessage string
	switch visit.Language {
	case "es":
		smsMessage = fmt.Sprintf("InmoVisitas: ¡Tu visita %s está %s!\nInicio: %s.\nMás detalles en tu correo.",
			visit.Code, status,
			visit.StartTime.Format("02/01 15:04"),
		)
	default:
		smsMessage = fmt.Sprintf("InmoVisitas: Visit %s is %s!\nStart: %s.\nMore details in your email.",
			visit.Code, status,
			visit.StartTime.Format("02/01 15:04"),
		)
	}

	if errSMS := SendSMS(visit.VisitorPhone, smsMessage); errSMS != nil {
		log.Printf("ALERT: visit %s was recorded, but the SMS to %s failed: %v", visit.Code, visit.VisitorPhone, errSMS)
	}
}
