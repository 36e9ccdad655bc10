package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyFixed2(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{5000, "50.00"},
		{295000, "2950.00"},
		{-5000, "-50.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Fixed2(); got != tc.want {
			t.Fatalf("Fixed2(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyDisplay(t *testing.T) {
	if got := (Money{Cents: 5000}).Display(USD); got != "$50.00" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -5000}).Display(EUR); got != "-€50.00" {
		t.Fatalf("got %q", got)
	}
}

func TestTransactionSigned(t *testing.T) {
	income := Transaction{Amount: Money{Cents: 300000}, Type: Income}
	expense := Transaction{Amount: Money{Cents: 5000}, Type: Expense}
	if got := income.Signed(USD); got != "+$3000.00" {
		t.Fatalf("income signed = %q", got)
	}
	if got := expense.Signed(GBP); got != "-£50.00" {
		t.Fatalf("expense signed = %q", got)
	}
}
