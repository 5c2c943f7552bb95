// Package submit provides Submitter implementations for accepted
// registration forms.
//
// Acknowledge is the default: it only tells the user that the form was
// sent. Middleware wraps a Submitter with cross-cutting behaviour such as
// logging, metrics or tracing:
//
//	s := submit.Wrap(submit.Acknowledge(session),
//	    submit.Logged(logger),
//	    middleware.OpenTelemetry(),
//	)
package submit

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/toast"
)

// AcknowledgementMessage is shown when a form is accepted.
const AcknowledgementMessage = "Форма успешно отправлена!"

// Acknowledge returns a Submitter that shows a success toast carrying
// AcknowledgementMessage.
func Acknowledge(e toast.Emitter) regform.Submitter {
	return regform.SubmitterFunc(func(ctx context.Context, _ regform.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		toast.Success(e, AcknowledgementMessage)
		return nil
	})
}

// Middleware wraps a Submitter.
type Middleware func(next regform.Submitter) regform.Submitter

// Wrap applies middleware to s. The first middleware is the outermost.
func Wrap(s regform.Submitter, mws ...Middleware) regform.Submitter {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			s = mws[i](s)
		}
	}
	return s
}

// Logged logs every submission. Info and error lines carry no personal
// data; the email address is logged at debug level only and the password
// is never logged.
func Logged(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default().With("component", "submit")
	}
	return func(next regform.Submitter) regform.Submitter {
		return regform.SubmitterFunc(func(ctx context.Context, rec regform.Record) error {
			start := time.Now()
			err := next.Submit(ctx, rec)
			attrs := []any{
				"organization", rec.Organization,
				"duration", time.Since(start),
			}
			logger.DebugContext(ctx, "submission record", "email", rec.Email)
			if err != nil {
				logger.ErrorContext(ctx, "submission failed", append(attrs, "error", err)...)
				return err
			}
			logger.InfoContext(ctx, "form submitted", attrs...)
			return nil
		})
	}
}
