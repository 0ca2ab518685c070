package app

import (
	"log/slog"
	"os"

	"github.com/hanifkusuma/otpgate/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Ctx:        a.ctx,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			Otp:        a.otp,
			UID:        a.uid,
			OID:        a.oid,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
			Mail:       a.mail,
			Messaging:  a.messaging,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
