// Package emailsvc provides the core.EmailService implementations.
package emailsvc

import "github.com/trezcool/shule/core"

// New picks the service for the running mode: the recording mock in tests,
// the console outside production or without a SendGrid key, SendGrid otherwise.
func New(conf *core.Config, logger core.Logger) core.EmailService {
	switch {
	case conf.TestMode:
		return NewConsoleServiceMock(conf, logger)
	case conf.Debug || conf.SendgridAPIKey == "":
		return NewConsoleService(conf, logger)
	}
	return NewSendgridService(conf, logger)
}
