// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package form

import (
	tea "github.com/charmbracelet/bubbletea"
)

type NewOpt[T any] = func(form *Form[T])

func New[T any](opts ...NewOpt[T]) Form[T] {
	form := Form[T]{keyMap: DefaultKeyMap()}
	for _, opt := range opts {
		opt(&form)
	}
	return form
}

func WithOnSubmit[T any](fn func(result T, err error) tea.Cmd) NewOpt[T] {
	return func(form *Form[T]) {
		form.OnSubmit = fn
	}
}

func WithOnCancel[T any](fn func() tea.Cmd) NewOpt[T] {
	return func(form *Form[T]) {
		form.OnCancel = fn
	}
}

func WithResetAfterSubmit[T any]() NewOpt[T] {
	return func(form *Form[T]) {
		form.ResetAfterSubmit = true
	}
}

// WithInput places input on a new row.
func WithInput[T any](id string, input FormInput) NewOpt[T] {
	return func(form *Form[T]) {
		form.items = append(form.items, formItem{id: id, input: input})
		form.rows = append(form.rows, formRow{items: []int{len(form.items) - 1}})
	}
}

// WithInputInline places input next to the previous one.
func WithInputInline[T any](id string, input FormInput) NewOpt[T] {
	return func(form *Form[T]) {
		if len(form.rows) == 0 {
			WithInput[T](id, input)(form)
			return
		}
		form.items = append(form.items, formItem{id: id, input: input})
		last := &form.rows[len(form.rows)-1]
		last.items = append(last.items, len(form.items)-1)
	}
}
