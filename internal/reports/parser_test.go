package reports

import "testing"

func TestParseBasicSubmission(t *testing.T) {
	text := "customer：Zhang San\nproject：VIP top-up\namount：5000"
	fields := Parse(text, "")
	if fields.Status != ExtractionSuccess {
		t.Fatalf("expected extraction to succeed, got status[%s]", fields.Status)
	}
	if fields.CustomerName != "Zhang San" {
		t.Errorf("expected customer 'Zhang San', got '%s'", fields.CustomerName)
	}
	if fields.ProjectName != "VIP top-up" {
		t.Errorf("expected project 'VIP top-up', got '%s'", fields.ProjectName)
	}
	if fields.AmountExtracted != "5000" {
		t.Errorf("expected amount '5000', got '%s'", fields.AmountExtracted)
	}
}

func TestParseIdempotence(t *testing.T) {
	text := "客户：李四\n项目：代付\n存款金额：1,200.50"
	first := Parse(text, OrderTypeDeposit)
	second := Parse(text, OrderTypeDeposit)
	if first != second {
		t.Errorf("expected identical output on repeat parse, got %+v then %+v", first, second)
	}
	if first.AmountExtracted != "1200.50" {
		t.Errorf("expected thousands separator stripped, got '%s'", first.AmountExtracted)
	}
}

func TestParseTypeSensitivity(t *testing.T) {
	text := "customer: A\nproject: B\ndeposit amount: 100\nwithdrawal amount: 200"
	fields := Parse(text, OrderTypeWithdrawal)
	if fields.AmountExtracted != "200" {
		t.Errorf("expected withdrawal parse to extract 200, got '%s'", fields.AmountExtracted)
	}
	fields = Parse(text, OrderTypeDeposit)
	if fields.AmountExtracted != "100" {
		t.Errorf("expected deposit parse to extract 100, got '%s'", fields.AmountExtracted)
	}
}

func TestParseGenericAmountFallback(t *testing.T) {
	// a submission that writes "amount" instead of "deposit amount"
	// still parses in a typed flow via the generic label fallback
	text := "customer：Zhang San\nproject：VIP top-up\namount：5000"
	fields := Parse(text, OrderTypeDeposit)
	if fields.AmountExtracted != "5000" {
		t.Errorf("expected generic label fallback to extract 5000, got '%s'", fields.AmountExtracted)
	}
}

func TestParseWithoutTrailingNewline(t *testing.T) {
	fields := Parse("customer: A", "")
	if fields.CustomerName != "A" {
		t.Errorf("expected end-of-string fallback to capture 'A', got '%s'", fields.CustomerName)
	}
}

func TestParseMalformedInput(t *testing.T) {
	fields := Parse("completely unstructured text with no fields at all", "")
	if fields.Status != ExtractionFailed {
		t.Errorf("expected failed extraction, got status[%s]", fields.Status)
	}
	if fields.CustomerName != "" || fields.ProjectName != "" || fields.AmountExtracted != "" {
		t.Errorf("expected empty fields, got %+v", fields)
	}
}

func TestParseDiscardsNonNumericAmount(t *testing.T) {
	fields := Parse("customer: A\namount: about five thousand\n", "")
	if fields.AmountExtracted != "" {
		t.Errorf("expected non-numeric amount to be discarded, got '%s'", fields.AmountExtracted)
	}
	// customer still captured, so extraction as a whole succeeds
	if fields.Status != ExtractionSuccess {
		t.Errorf("expected success via customer capture, got status[%s]", fields.Status)
	}
}
