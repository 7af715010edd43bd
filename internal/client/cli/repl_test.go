package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	signedIn bool

	calls []string
}

func (f *fakeExec) isSignedIn() bool { return f.signedIn }
func (f *fakeExec) SignIn(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	f.signedIn = true
	return nil
}
func (f *fakeExec) SignUp(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) ResetPassword(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) EditProfile(ctx context.Context) error {
	f.calls = append(f.calls, "edit")
	return nil
}
func (f *fakeExec) UploadAvatar(ctx context.Context) error {
	f.calls = append(f.calls, "avatar")
	return nil
}
func (f *fakeExec) Dashboard(ctx context.Context) error {
	f.calls = append(f.calls, "dashboard")
	return nil
}
func (f *fakeExec) Settings(ctx context.Context) error {
	f.calls = append(f.calls, "settings")
	return nil
}
func (f *fakeExec) SignOut(ctx context.Context) error {
	f.calls = append(f.calls, "signout")
	f.signedIn = false
	return nil
}

func TestRunREPL_SignInFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"signin",
		"help",
		"profile",
		"dashboard",
		"settings",
		"edit",
		"avatar",
		"foobar",
		"signout",
		"exit",
	}, "\n"))

	exec := &fakeExec{signedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"signin", "profile", "dashboard", "settings", "edit", "avatar", "signout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i, c := range want {
		if exec.calls[i] != c {
			t.Fatalf("calls[%d] = %q, want %q (all: %v)", i, exec.calls[i], c, exec.calls)
		}
	}
}

func TestRunREPL_Aliases(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("login\nlogout\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 2 || exec.calls[0] != "signin" || exec.calls[1] != "signout" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_UnknownCommandReported(t *testing.T) {
	var printed []string
	origPrint := printlnFn
	printlnFn = func(args ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("frobnicate\nexit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	found := false
	for _, line := range printed {
		if strings.Contains(line, "Unknown command") && strings.Contains(line, "frobnicate") {
			found = true
		}
	}
	if !found {
		t.Fatalf("unknown command not reported: %v", printed)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
