package request

// rule evaluates one check and reports the failure mode when it fails.
type rule func() (FailureMode, bool)

// firstFailure runs rules in order and stops at the first failure.
func firstFailure(rules ...rule) error {
	for _, r := range rules {
		if mode, failed := r(); failed {
			return &ValidationError{Mode: mode}
		}
	}
	return nil
}

// present fails with mode when value is empty.
func present(value string, mode FailureMode) rule {
	return func() (FailureMode, bool) {
		return mode, value == ""
	}
}

// senderAnchored fails when a sender name or reply-to is set without an address.
func senderAnchored(address, name, replyTo string) rule {
	return func() (FailureMode, bool) {
		return MissingSenderAddress, address == "" && (name != "" || replyTo != "")
	}
}
