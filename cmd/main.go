package main

import (
	"go-clinic-scheduling/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

// main starts the clinic scheduling API: config, Postgres, optional Redis
// room locks and the HTTP server, in that order.
func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize clinic scheduling service: %v", err)
	}

	logrus.Infof("Clinic scheduling service ready (timezone offset %+d h, default duration %d min)",
		app.Config.Scheduling.UTCOffsetHours, app.Config.Scheduling.DefaultDurationMinutes)
	app.Run()
}
