package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pinwatch/internal"
	"github.com/rios0rios0/pinwatch/internal/infrastructure/controllers"
)

type application struct {
	appInternal     *internal.AppInternal
	checkController *controllers.CheckController
}

func injectApplication() *application {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var app application
	if err := container.Invoke(func(ai *internal.AppInternal, cc *controllers.CheckController) {
		app.appInternal = ai
		app.checkController = cc
	}); err != nil {
		panic(err)
	}

	return &app
}
