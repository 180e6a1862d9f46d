package form

import (
	"context"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/markup"
	"github.com/goliatone/go-formbuilder/pkg/session"
)

// Error renders the invalid-feedback block for a field, or nil when the
// field has no errors.
func (r *Renderer) Error(ctx context.Context, name string) (*markup.Element, error) {
	bag, err := r.errorBag(ctx)
	if err != nil {
		return nil, err
	}
	return r.feedback(bag.Get(name)), nil
}

// Errors renders every validation message plus the error flash in a single
// danger alert, or nil when there is nothing to report.
func (r *Renderer) Errors(ctx context.Context) (*markup.Element, error) {
	bag, err := r.errorBag(ctx)
	if err != nil {
		return nil, err
	}
	flash, err := r.flash(ctx, session.ErrorKey)
	if err != nil {
		return nil, err
	}

	messages := bag.All()
	if flash = strings.TrimSpace(flash); flash != "" {
		messages = append(messages, flash)
	}
	if len(messages) == 0 {
		return nil, nil
	}

	return r.sink.Div().
		Attr("id", r.classes.ErrorAlertID).
		Class(r.classes.ErrorAlert).
		Append(markup.Lines(messages)), nil
}

// Success renders the success flash, or nil when none is set.
func (r *Renderer) Success(ctx context.Context) (*markup.Element, error) {
	flash, err := r.flash(ctx, session.SuccessKey)
	if err != nil {
		return nil, err
	}
	if flash = strings.TrimSpace(flash); flash == "" {
		return nil, nil
	}
	return r.sink.Div().Class(r.classes.SuccessAlert).Text(flash), nil
}

// Messages composes Success and Errors into one container, or nil when
// both are absent.
func (r *Renderer) Messages(ctx context.Context) (*markup.Element, error) {
	success, err := r.Success(ctx)
	if err != nil {
		return nil, err
	}
	errs, err := r.Errors(ctx)
	if err != nil {
		return nil, err
	}
	if success == nil && errs == nil {
		return nil, nil
	}
	return r.sink.Div().Class(r.classes.Messages).Append(success, errs), nil
}

func (r *Renderer) feedback(messages []string) *markup.Element {
	if len(messages) == 0 {
		return nil
	}
	return r.sink.Div().Class(r.classes.Feedback).Append(markup.Lines(messages))
}
