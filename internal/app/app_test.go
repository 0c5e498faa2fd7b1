package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"diplomagen/internal/artifact"
	"diplomagen/internal/config"
	"diplomagen/internal/form"
	"diplomagen/internal/logging"
	"diplomagen/internal/transport"
	"diplomagen/internal/ui"

	"github.com/google/go-cmp/cmp"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="diplomas_generados.zip"`)
		io.WriteString(w, "PK-archive")
	})
	mux.HandleFunc("/download-word", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../../Diploma_nuevo_2025.docx"`)
		io.WriteString(w, "word")
	})
	mux.HandleFunc("/download-excel", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "excel")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type scriptedPrompter struct {
	paths    []string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompter) AskPath(message, current string, exts []string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.paths) == 0 {
		return "", ui.ErrAborted
	}
	path := p.paths[0]
	p.paths = p.paths[1:]
	return path, nil
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		return false, nil
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func newGenerateApp(t *testing.T, srvURL, outDir string, prompter Prompter) (*GenerateApp, *ui.ConsoleView) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Server.URL = srvURL
	cfg.UI.ResetDelay = time.Millisecond
	logger := logging.Discard()

	view := ui.NewConsoleView(io.Discard)
	controller := form.NewController(cfg, view,
		transport.NewClient(cfg, nil, logger),
		artifact.NewSaver(outDir, logger), logger)
	return NewGenerateApp(cfg, controller, prompter, logger), view
}

func TestGenerateOneShot(t *testing.T) {
	srv := newBackend(t)
	in, out := t.TempDir(), t.TempDir()
	app, view := newGenerateApp(t, srv.URL, out, nil)

	err := app.Run(context.Background(), &GenerateOptions{
		TemplatePath: writeFile(t, in, "diploma.docx"),
		DataPath:     writeFile(t, in, "people.xlsx"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(out, "diplomas_generados.zip"))
	if err != nil || string(got) != "PK-archive" {
		t.Fatalf("artifact = %q, %v", got, err)
	}
	if _, kind := view.Message(); kind != form.MessageSuccess {
		t.Errorf("message kind = %q", kind)
	}
}

func TestGenerateMissingPath(t *testing.T) {
	srv := newBackend(t)
	in := t.TempDir()
	app, _ := newGenerateApp(t, srv.URL, t.TempDir(), nil)

	err := app.Run(context.Background(), &GenerateOptions{TemplatePath: writeFile(t, in, "diploma.docx")})
	var missing *form.MissingFileError
	if !errors.As(err, &missing) || !missing.Data {
		t.Fatalf("Run() = %v, want missing data file", err)
	}
}

func TestGenerateNonexistentPath(t *testing.T) {
	srv := newBackend(t)
	app, _ := newGenerateApp(t, srv.URL, t.TempDir(), nil)

	err := app.Run(context.Background(), &GenerateOptions{TemplatePath: "/nonexistent/diploma.docx"})
	if err == nil || !strings.Contains(err.Error(), "cannot select template") {
		t.Fatalf("Run() = %v", err)
	}
}

func TestGenerateInteractive(t *testing.T) {
	srv := newBackend(t)
	in, out := t.TempDir(), t.TempDir()
	prompter := &scriptedPrompter{
		paths: []string{
			writeFile(t, in, "diploma.pdf"), writeFile(t, in, "people.xlsx"),
			writeFile(t, in, "diploma.docx"), writeFile(t, in, "people.xls"),
		},
		confirms: []bool{true, false},
	}
	app, _ := newGenerateApp(t, srv.URL, out, prompter)

	if err := app.Run(context.Background(), &GenerateOptions{Interactive: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"Template file:", "Data file:", "Try again?",
		"Template file:", "Data file:", "Generate another batch?",
	}
	if diff := cmp.Diff(want, prompter.asked); diff != "" {
		t.Errorf("prompts (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(out, "diplomas_generados.zip")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestGenerateInteractiveAbort(t *testing.T) {
	srv := newBackend(t)
	app, _ := newGenerateApp(t, srv.URL, t.TempDir(), &scriptedPrompter{})
	if err := app.Run(context.Background(), &GenerateOptions{Interactive: true}); err != nil {
		t.Fatalf("Run() = %v, want nil on abort", err)
	}
}

func TestSamples(t *testing.T) {
	srv := newBackend(t)
	out := t.TempDir()
	cfg := config.NewDefaultConfig()
	cfg.Server.URL = srv.URL
	logger := logging.Discard()

	app := NewSamplesApp(cfg, transport.NewClient(cfg, nil, logger), artifact.NewSaver(out, logger), logger)
	paths, err := app.Run(context.Background(), &SamplesOptions{Template: true, Data: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		filepath.Join(out, "Diploma_nuevo_2025.docx"),
		filepath.Join(out, "INFORMACION_DIPLOMAS.xlsx"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
}

func TestSamplesNothingSelected(t *testing.T) {
	cfg := config.NewDefaultConfig()
	logger := logging.Discard()
	app := NewSamplesApp(cfg, transport.NewClient(cfg, nil, logger), artifact.NewSaver(t.TempDir(), logger), logger)
	if _, err := app.Run(context.Background(), &SamplesOptions{}); err == nil {
		t.Fatal("expected error")
	}
}
