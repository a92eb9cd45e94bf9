package service

import "log"

// LogNotifier satisfies the scheduling Notifier contract by writing the
// messages to the server log. In the web client these surface as toasts;
// on the server side the log is the audience.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.Printf("notify: %s", msg) }
func (LogNotifier) Error(msg string)   { log.Printf("notify error: %s", msg) }
