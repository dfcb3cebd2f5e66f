package main

import "github.com/sqweek/dialog"

// pickFolder asks the user for a scene folder. It returns dialog.ErrCancelled when the
// dialog is dismissed.
var pickFolder = func() (string, error) {
	return dialog.Directory().Title("Select Binary Opacity Grid scene folder").Browse()
}
