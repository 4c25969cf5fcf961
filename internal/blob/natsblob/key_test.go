package natsblob

import "testing"

func TestKVKey(t *testing.T) {
	t.Parallel()
	if got := kvKey("commentbox:snapshot"); got != "commentbox.snapshot" {
		t.Fatalf("kvKey: got %q", got)
	}
	if got := kvKey("plain"); got != "plain" {
		t.Fatalf("kvKey must pass plain keys through, got %q", got)
	}
}
