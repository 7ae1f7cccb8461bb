/*
Package errors provides semantic error types for the entitymeta library.

Metadata derivation itself almost never fails: fields that cannot be mapped are
left out of the derived schema. The errors defined here cover the few real
failure points around it:

	var (
	    ErrNotStruct         = errors.New("entity type is not a struct")
	    ErrNotPointer        = errors.New("entity must be a non-nil pointer")
	    ErrAccessorFault     = errors.New("accessor fault")
	    ErrUnknownColumnType = errors.New("unknown column type")
	    ErrUnknownHostType   = errors.New("unknown host type")
	    ErrCodec             = errors.New("codec conversion failed")
	    ErrNoPrimaryKey      = errors.New("entity has no primary key")
	)

Usage:

	v, err := field.Get(&player)
	if err != nil {
	    if errors.IsAccessorFault(err) {
	        // the getter panicked or the entity had the wrong type
	    }
	    return err
	}

	if err := reg.LoadYAML(f); errors.IsConfigError(err) {
	    // a host type or column type name in the file is unknown
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
