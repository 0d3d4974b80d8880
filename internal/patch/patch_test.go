package patch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/srRodolfo/dev-container/internal/config"
	"github.com/srRodolfo/dev-container/internal/errors"
	"github.com/srRodolfo/dev-container/internal/runtime"
)

func demoRules(t *testing.T) []Rule {
	t.Helper()
	req, err := config.NewProjectRequest("Demo_App!!", "12", nil)
	if err != nil {
		t.Fatalf("NewProjectRequest() error: %v", err)
	}
	return LaravelEnvRules(req, config.DefaultSettings())
}

func TestLaravelEnvRules(t *testing.T) {
	rules := demoRules(t)

	want := []struct {
		key   string
		value string
	}{
		{"APP_URL", "http://demo-app.test"},
		{"DB_CONNECTION", "mariadb"},
		{"DB_PORT", "3306"},
		{"DB_DATABASE", "demo-app"},
		{"DB_HOST", "mariadb"},
		{"DB_USERNAME", "root"},
		{"DB_PASSWORD", "password"},
	}

	if len(rules) != len(want) {
		t.Fatalf("rules = %d, want %d", len(rules), len(want))
	}
	for i, w := range want {
		if rules[i].Key != w.key || rules[i].Value != w.value {
			t.Errorf("rule %d = %s=%s, want %s=%s", i+1, rules[i].Key, rules[i].Value, w.key, w.value)
		}
		if !strings.HasPrefix(rules[i].Script, "s/") || !strings.HasSuffix(rules[i].Script, "/") {
			t.Errorf("rule %d script = %q, want s/.../.../", i+1, rules[i].Script)
		}
	}

	if rules[0].Script != `s/^[#[:space:]]*APP_URL=.*$/APP_URL=http:\/\/demo-app.test/` {
		t.Errorf("APP_URL script = %q", rules[0].Script)
	}
}

func TestEnvAssignment_Escaping(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantScript string
	}{
		{"plain", "secret", `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD=secret/`},
		{"sed specials", "a&b/c", `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD=a\&b\/c/`},
		{"space is quoted", "pa ss", `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD='pa ss'/`},
		{"dollar is quoted", "pa$$", `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD='pa$$'/`},
		{"single quote uses double quotes", `it's`, `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD="it's"/`},
		{"single quote and dollar", `it's$ecret`, `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD="it's\\$ecret"/`},
		{"empty", "", `s/^[#[:space:]]*DB_PASSWORD=.*$/DB_PASSWORD=/`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := EnvAssignment("db password", "DB_PASSWORD", tt.value)
			if rule.Script != tt.wantScript {
				t.Errorf("Script = %q, want %q", rule.Script, tt.wantScript)
			}
		})
	}
}

func TestApplyRules_Success(t *testing.T) {
	rt := runtime.NewMockRuntime()
	p := New(rt)
	rules := demoRules(t)

	if err := p.ApplyRules(context.Background(), "dev_container_php", "/var/www/html/demo-app", ".env", rules); err != nil {
		t.Fatalf("ApplyRules() error: %v", err)
	}

	calls := rt.GetCallsFor("Exec")
	if len(calls) != len(rules) {
		t.Fatalf("Exec calls = %d, want %d", len(calls), len(rules))
	}
	for i, call := range calls {
		if call.Args[0] != "dev_container_php" {
			t.Errorf("call %d container = %v", i, call.Args[0])
		}
		cmd := call.Args[1].([]string)
		if len(cmd) != 4 || cmd[0] != "sed" || cmd[1] != "-i" || cmd[2] != rules[i].Script || cmd[3] != ".env" {
			t.Errorf("call %d command = %q", i, cmd)
		}
		opts := call.Args[2].(runtime.ExecOptions)
		if opts.WorkingDir != "/var/www/html/demo-app" {
			t.Errorf("call %d dir = %q", i, opts.WorkingDir)
		}
	}
}

func TestApplyRules_StopsAtFirstFailure(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.QueueExec(runtime.ExecOK(""), runtime.ExecOK(""), runtime.ExecOK(""), runtime.ExecFail(1))
	p := New(rt)

	err := p.ApplyRules(context.Background(), "php", "/var/www/html/demo-app", ".env", demoRules(t))
	if !errors.IsKind(err, errors.KindDocker) {
		t.Fatalf("ApplyRules() error = %v, want docker error", err)
	}
	if !strings.Contains(err.Error(), "rule 4 (db database") {
		t.Errorf("error should name rule 4, got %q", err.Error())
	}
	if n := len(rt.GetCallsFor("Exec")); n != 4 {
		t.Errorf("Exec calls = %d, want 4 (rules 5-7 not attempted)", n)
	}
}

func TestApplyRules_LaunchFailure(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetError("Exec", fmt.Errorf("docker: not found"))
	p := New(rt)

	err := p.ApplyRules(context.Background(), "php", "/app", ".env", demoRules(t))
	if !errors.IsKind(err, errors.KindDocker) || !strings.Contains(err.Error(), "rule 1") {
		t.Errorf("ApplyRules() error = %v", err)
	}
}

func TestApplyRules_Empty(t *testing.T) {
	rt := runtime.NewMockRuntime()
	if err := New(rt).ApplyRules(context.Background(), "php", "/app", ".env", nil); err != nil {
		t.Errorf("ApplyRules(nil) error: %v", err)
	}
	if len(rt.GetCalls()) != 0 {
		t.Error("no rules should mean no calls")
	}
}

const patchedEnv = `APP_NAME=Laravel
APP_URL=http://demo-app.test

DB_CONNECTION=mariadb
DB_HOST=mariadb
DB_PORT=3306
DB_DATABASE=demo-app
DB_USERNAME=root
DB_PASSWORD=password
`

func TestVerify(t *testing.T) {
	rules := append(demoRules(t), ViteServerRule())

	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{"all keys hold", patchedEnv, ""},
		{"wrong value", strings.Replace(patchedEnv, "DB_DATABASE=demo-app", "DB_DATABASE=laravel", 1), "rule 4 (db database)"},
		{"still commented", strings.Replace(patchedEnv, "DB_HOST=mariadb", "# DB_HOST=127.0.0.1", 1), "rule 5 (db host) left DB_HOST unset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := runtime.NewMockRuntime()
			rt.QueueExec(runtime.ExecOK(tt.contents))

			err := New(rt).Verify(context.Background(), "php", "/var/www/html/demo-app", ".env", rules)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Verify() error: %v", err)
				}
				return
			}
			if !errors.IsKind(err, errors.KindDocker) || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_ReadFailure(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.QueueExec(runtime.ExecFail(1))

	err := New(rt).Verify(context.Background(), "php", "/app", ".env", demoRules(t))
	if !errors.IsKind(err, errors.KindDocker) {
		t.Errorf("Verify() error = %v, want docker error", err)
	}
}
