package cli

import (
	"fmt"
	"strings"

	"github.com/kampanlabs/sawari/internal/client/flows"
	"github.com/kampanlabs/sawari/internal/client/validate"
)

// fieldOrder fixes the rendering order of field errors so output is stable.
var fieldOrder = []string{"name", "email", "password", "confirmPassword", "dateOfBirth", "city"}

func renderFieldErrors(errs validate.FieldErrors) {
	for _, field := range fieldOrder {
		if msg, ok := errs[field]; ok {
			printlnFn(fmt.Sprintf("  %s: %s", field, msg))
		}
	}
	for field, msg := range errs {
		known := false
		for _, f := range fieldOrder {
			if f == field {
				known = true
				break
			}
		}
		if !known {
			printlnFn(fmt.Sprintf("  %s: %s", field, msg))
		}
	}
}

func renderAlert(a flows.AlertRequest) {
	printlnFn(fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(a.Severity)), a.Title, a.Message))
}
