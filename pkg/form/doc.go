// Package form renders Bootstrap styled HTML forms.
//
// A Renderer opens forms against named resource routes, choosing between
// <base>.store and <base>.update from the bound model, and renders labelled
// controls that reflect the validation errors and flash messages left in
// the session by the previous request.
//
//	f, err := renderer.Create(ctx, "users", user, false)
//	name, err := f.Field(ctx, "Name", "name", field.Text, user.Name, field.Options{})
//	f.Append(name, renderer.Submit("Save"))
//	err = f.Render(ctx, w)
package form
