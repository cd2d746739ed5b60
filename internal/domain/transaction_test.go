package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{TxPending, TxApproved, true},
		{TxPending, TxRejected, true},
		{TxPending, TxCompleted, true},
		{TxApproved, TxCompleted, true},
		{TxApproved, TxRejected, true},

		// Terminal states cannot move backwards. Earlier releases allowed a
		// completed transaction back to pending; that is now refused.
		{TxCompleted, TxPending, false},
		{TxCompleted, TxApproved, false},
		{TxRejected, TxPending, false},
		{TxRejected, TxApproved, false},
		{TxApproved, TxPending, false},

		// Same-status writes are always allowed for note amendments.
		{TxPending, TxPending, true},
		{TxCompleted, TxCompleted, true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidTransactionStatus(t *testing.T) {
	for _, s := range []string{TxPending, TxApproved, TxRejected, TxCompleted} {
		if !ValidTransactionStatus(s) {
			t.Errorf("expected %q to be a valid transaction status", s)
		}
	}
	if ValidTransactionStatus("cancelled") {
		t.Error("expected unknown transaction status to be invalid")
	}
}

func TestPaymentMethodCatalogue(t *testing.T) {
	if len(PaymentMethods) != 5 {
		t.Fatalf("expected 5 payment methods, got %d", len(PaymentMethods))
	}
	values := map[string]bool{}
	for _, m := range PaymentMethods {
		values[m.Value] = true
	}
	for _, want := range []string{"paypal", "bank_transfer", "crypto", "credit_card", "internal"} {
		if !values[want] {
			t.Errorf("expected payment method %q in catalogue", want)
		}
	}
}
