// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prompt is the interactive terminal front end. It collects the run
// parameters, confirms overwrites and reports results.
package prompt

import (
	"github.com/pterm/pterm"
)

// 🖼️ Dialog is the terminal surface the front end talks to
type Dialog interface {
	Text(label, defaultValue string) (string, error)
	Confirm(question string, defaultValue bool) (bool, error)
	Info(msg string)
	Success(msg string)
	Error(msg string, err error)
}

// PtermDialog renders dialogs with pterm's interactive printers.
type PtermDialog struct{}

func NewPtermDialog() *PtermDialog {
	return &PtermDialog{}
}

func (d *PtermDialog) Text(label, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultValue(defaultValue).Show(label)
}

func (d *PtermDialog) Confirm(question string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultValue).Show(question)
}

func (d *PtermDialog) Info(msg string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️"}).Println(msg)
}

func (d *PtermDialog) Success(msg string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
}

func (d *PtermDialog) Error(msg string, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
	if err != nil {
		pterm.Error.Println(err)
	}
}
