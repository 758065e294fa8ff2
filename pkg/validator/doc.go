// Package validator validates request structs with go-playground/validator
// and converts failures into a flat, JSON-friendly [ValidationErrors] list.
//
//	type Payload struct {
//	    Name string `json:"name" validate:"required"`
//	}
//
//	if err := validator.ValidateStruct(p); err != nil {
//	    if validator.IsValidationError(err) {
//	        errs := validator.ExtractValidationErrors(err)
//	        ...
//	    }
//	}
//
// Field names are taken from the json tag so they match what the client sent.
package validator
