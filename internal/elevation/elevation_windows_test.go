//go:build windows

package elevation

import "testing"

func TestRelaunchCommandQuotes(t *testing.T) {
	got := relaunchCommand(`C:\Users\o'neil\porter.exe`, []string{"-port", "3000"})
	want := `Start-Process -FilePath 'C:\Users\o''neil\porter.exe' -Verb RunAs -ArgumentList '-port','3000'`
	if got != want {
		t.Errorf("relaunchCommand() = %q, want %q", got, want)
	}
}
