// Package app wires dependencies and manages the service lifecycle.
package app

import (
	"context"
	"net/http"

	"github.com/hanifkusuma/otpgate/internal/pkg/clock"
	"github.com/hanifkusuma/otpgate/internal/pkg/config"
	"github.com/hanifkusuma/otpgate/internal/pkg/goroutine"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
	"github.com/hanifkusuma/otpgate/internal/pkg/mail"
	"github.com/hanifkusuma/otpgate/internal/pkg/messaging"
	"github.com/hanifkusuma/otpgate/internal/pkg/otp"
	"github.com/hanifkusuma/otpgate/internal/pkg/router"
	"github.com/hanifkusuma/otpgate/internal/pkg/uid"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	otp       otp.Generator
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources (nil unless the configured otp delivery driver needs them)
	mail      mail.Mail
	messaging messaging.Publisher

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDelivery()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
