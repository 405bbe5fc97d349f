// internals/features/billing/payment_methods/service/rules.go
package service

// Pure policy predicates. Every rule the UI gates on is re-checked here
// server-side; handlers must call these regardless of what the client sent.

// CanRemovePaymentMethod: removing the last active method is forbidden while
// any subscription still auto-renews against it.
func CanRemovePaymentMethod(isDefault bool, activeMethodCount int64, autoRenewSubscriptions int64) (bool, string) {
	if autoRenewSubscriptions > 0 && activeMethodCount <= 1 {
		return false, "This is the only payment method backing an auto-renewing subscription. Disable auto-renewal or add another method first."
	}
	if isDefault && activeMethodCount > 1 {
		return false, "Set another payment method as default before removing this one."
	}
	return true, ""
}

// CanToggleAutoRenew: enabling auto-renewal requires at least one active
// payment method on file.
func CanToggleAutoRenew(enable bool, activeMethodCount int64) (bool, string) {
	if enable && activeMethodCount == 0 {
		return false, "Add a payment method before enabling auto-renewal."
	}
	return true, ""
}
