package peer

import "testing"

func TestXOROverlapRoundTrip(t *testing.T) {
	var a, b ID
	for i := range a {
		a[i] = byte(i + 1)
		b[i] = byte(255 - i)
	}

	packed := a.XOROverlappedBy4(b)
	recovered := DeXOROverlappedBy4(b, packed)

	if recovered != a {
		t.Fatalf("recovered id mismatch: got %x, want %x", recovered, a)
	}
}

func TestXOROverlapScenarioS1(t *testing.T) {
	var sender, recipient ID
	for i := range sender {
		sender[i] = 0x01
		recipient[i] = 0x02
	}

	packed := sender.XOROverlappedBy4(recipient)

	if packed[0] != 0x01 || packed[1] != 0x01 || packed[2] != 0x01 || packed[3] != 0x01 {
		t.Fatalf("unexpected sender-hint bytes: %x", packed[0:4])
	}
	if packed[32] != 0x02 || packed[33] != 0x02 || packed[34] != 0x02 || packed[35] != 0x02 {
		t.Fatalf("unexpected recipient-hint bytes: %x", packed[32:36])
	}
	for i := 4; i < 32; i++ {
		if packed[i] != 0x03 {
			t.Fatalf("byte %d: got %#x, want 0x03", i, packed[i])
		}
	}
}

func TestShortIDExtraction(t *testing.T) {
	var a, b ID
	a[0], a[1], a[2], a[3] = 0xAA, 0xBB, 0xCC, 0xDD
	b[28], b[29], b[30], b[31] = 0x11, 0x22, 0x33, 0x44

	packed := a.XOROverlappedBy4(b)

	if got := SenderShortID(packed); got != 0xAABBCCDD {
		t.Fatalf("SenderShortID = %#x, want 0xAABBCCDD", got)
	}
	if got := RecipientShortID(packed); got != 0x11223344 {
		t.Fatalf("RecipientShortID = %#x, want 0x11223344", got)
	}
}

func TestIDIsZero(t *testing.T) {
	var zero ID
	if !zero.IsZero() {
		t.Fatalf("expected zero id to report IsZero")
	}

	zero[5] = 1
	if zero.IsZero() {
		t.Fatalf("expected non-zero id to not report IsZero")
	}
}
