package credcfg

// Validator is implemented by every sub configuration of the wallet client.
type Validator interface {
	// Validate returns an error if the configuration can't be used.
	Validate() error
}

// Validate runs the validators in order and returns the first error.
func Validate(validators ...Validator) error {
	for _, validator := range validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}
