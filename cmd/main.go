package main

import (
	"github.com/innatthecape/breakfast-svc/internal/app"
	"github.com/innatthecape/breakfast-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
