package elevation

import (
	"reflect"
	"testing"
)

func TestRelaunchArgs(t *testing.T) {
	got := relaunchArgs([]string{"-elevate", "-interval", "1s", "--elevate"})
	want := []string{"-interval", "1s"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("relaunchArgs() = %v, want %v", got, want)
	}
}

func TestHintMatchesElevation(t *testing.T) {
	if IsElevated() != (Hint() == "") {
		t.Errorf("Hint() = %q with IsElevated() = %v", Hint(), IsElevated())
	}
}
