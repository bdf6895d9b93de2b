package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/autopublish/internal"
	"github.com/rios0rios0/autopublish/internal/infrastructure/controllers"
)

func newContainer() *dig.Container {
	container := dig.New()
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}
	return container
}

func injectAppContext() *internal.AppInternal {
	var appInternal *internal.AppInternal
	if err := newContainer().Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectPublishController() *controllers.PublishController {
	var publishController *controllers.PublishController
	if err := newContainer().Invoke(func(pc *controllers.PublishController) {
		publishController = pc
	}); err != nil {
		panic(err)
	}

	return publishController
}
