// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskboard/internal/board"
)

// isolate points every config location at temp dirs and clears TASKBOARD_*
// variables. It returns the home and project directories.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, b := range envBindings() {
		t.Setenv(envPrefix+b.name, "")
	}
	t.Setenv(envPrefix+"COLUMNS", "")
	t.Chdir(project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	return fs
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.IDStyle != DefaultIDStyle {
		t.Errorf("IDStyle: got %q, want %q", cfg.IDStyle, DefaultIDStyle)
	}
	if cfg.ColumnWidth != DefaultColumnWidth {
		t.Errorf("ColumnWidth: got %d, want %d", cfg.ColumnWidth, DefaultColumnWidth)
	}
	if !cfg.Mouse || !cfg.LogEvents {
		t.Errorf("Mouse and LogEvents should default to true, got %v and %v", cfg.Mouse, cfg.LogEvents)
	}
	if cfg.SeedFile != "" || cfg.Title != "" {
		t.Errorf("seed and title should default empty, got %q and %q", cfg.SeedFile, cfg.Title)
	}
}

func TestLoadDefaults(t *testing.T) {
	home, project := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	if cfg.ProjectRoot != project {
		// Temp dirs may sit behind a symlink; compare resolved paths.
		want, _ := filepath.EvalSymlinks(project)
		got, _ := filepath.EvalSymlinks(cfg.ProjectRoot)
		if got != want {
			t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, project)
		}
	}
	if want := filepath.Join(home, ".taskboard", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
}

func TestLoadPriority(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".taskboard", "taskboard.toml"), `
title = "user title"
id_style = "sequence"
column_width = 20
log_level = "debug"

[columns]
todo = "Backlog"
`)
	writeFile(t, filepath.Join(project, "taskboard.toml"), `
title = "project title"
seed_file = "seed.json"
hook_command = "./hooks/on-change.sh"

[columns]
done = "Shipped"
`)
	t.Setenv("TASKBOARD_COLUMN_WIDTH", "40")
	t.Setenv("TASKBOARD_MOUSE", "no")

	cws, err := LoadWithSources(newFlagSet(), []string{"-title", "flag title", "-column", "in_progress=Doing"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	checks := []struct {
		field      string
		got, want  any
		wantSource ConfigSource
	}{
		{"title", cfg.Title, "flag title", SourceFlag},
		{"id_style", cfg.IDStyle, "sequence", SourceUserFile},
		{"log_level", cfg.LogLevel, "debug", SourceUserFile},
		{"column_width", cfg.ColumnWidth, 40, SourceEnv},
		{"mouse", cfg.Mouse, false, SourceEnv},
		{"columns.todo", cfg.Columns.Todo, "Backlog", SourceUserFile},
		{"columns.in_progress", cfg.Columns.InProgress, "Doing", SourceFlag},
		{"columns.done", cfg.Columns.Done, "Shipped", SourceProjFile},
		{"log_format", cfg.LogFormat, DefaultLogFormat, SourceDefault},
		{"hook_command", cfg.HookCommand, "./hooks/on-change.sh", SourceProjFile},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.field, c.got, c.want)
		}
		if cws.Sources[c.field] != c.wantSource {
			t.Errorf("source of %s: got %q, want %q", c.field, cws.Sources[c.field], c.wantSource)
		}
	}

	if cws.Sources["seed_file"] != SourceProjFile {
		t.Errorf("source of seed_file: got %q", cws.Sources["seed_file"])
	}
	if !filepath.IsAbs(cfg.SeedFile) || filepath.Base(cfg.SeedFile) != "seed.json" {
		t.Errorf("SeedFile should resolve under the project root, got %q", cfg.SeedFile)
	}
}

func TestLoadDotConfigFile(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".taskboard.toml"), `title = "hidden"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Title != "hidden" {
		t.Errorf("Title: got %q, want hidden", cfg.Title)
	}
}

func TestLoadXDGConfigFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "taskboard", "taskboard.toml"), `id_prefix = "T-"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IDPrefix != "T-" {
		t.Errorf("IDPrefix: got %q, want T-", cfg.IDPrefix)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{name: "unknown key", file: `colour = "red"`, wantErr: "unknown config key"},
		{name: "bad toml", file: `title = `, wantErr: "loading project config file"},
		{name: "bad id style", args: []string{"-id-style", "random"}, wantErr: "unknown id style"},
		{name: "narrow columns", args: []string{"-column-width", "4"}, wantErr: "column_width"},
		{name: "bad env int", env: map[string]string{"TASKBOARD_COLUMN_WIDTH": "wide"}, wantErr: "invalid integer"},
		{name: "bad env column", env: map[string]string{"TASKBOARD_COLUMNS": "later=Someday"}, wantErr: "unknown column"},
		{name: "bad column flag", args: []string{"-column", "todo"}, wantErr: "expected column=title"},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "parsing flags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, project := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(project, "taskboard.toml"), tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(newFlagSet(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvColumns(t *testing.T) {
	isolate(t)
	t.Setenv("TASKBOARD_COLUMNS", "todo=Later, 3 = Finished")

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	got := cws.Config.Columns.Map()
	want := map[board.ColumnID]string{board.ColumnTodo: "Later", board.ColumnDone: "Finished"}
	if len(got) != len(want) {
		t.Fatalf("Columns: got %v, want %v", got, want)
	}
	for id, title := range want {
		if got[id] != title {
			t.Errorf("column %s: got %q, want %q", id, got[id], title)
		}
	}
	if cws.Sources["columns.done"] != SourceEnv {
		t.Errorf("source of columns.done: got %q", cws.Sources["columns.done"])
	}
}

func TestFlagColumns(t *testing.T) {
	isolate(t)
	cws, err := LoadWithSources(newFlagSet(), []string{"-column", "todo = Up next", "-column", " DONE =Shipped"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cols := cws.Config.Columns
	if cols.Todo != "Up next" || cols.Done != "Shipped" {
		t.Errorf("Columns: got %+v", cols)
	}
	if cws.Sources["columns.todo"] != SourceFlag {
		t.Errorf("source of columns.todo: got %q", cws.Sources["columns.todo"])
	}
}

func TestApplyColumnTitles(t *testing.T) {
	tests := []struct {
		in      string
		want    ColumnTitles
		wantErr string
	}{
		{in: "todo = A", want: ColumnTitles{Todo: "A"}},
		{in: "Doing=B,  3  =  C ", want: ColumnTitles{InProgress: "B", Done: "C"}},
		{in: "", want: ColumnTitles{}},
		{in: "todo", wantErr: "expected column=title"},
		{in: "later = D", wantErr: "unknown column"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got ColumnTitles
			err := applyColumnTitles(&got, tt.in, nil, SourceEnv)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("got error %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyColumnTitles(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("applyColumnTitles(%q): got %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnvFullKeyNames(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	seed := filepath.Join(dir, "board.json")
	schema := filepath.Join(dir, "board.schema.json")
	t.Setenv("TASKBOARD_SEED_FILE", seed)
	t.Setenv("TASKBOARD_SCHEMA_FILE", schema)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	if cfg.SeedFile != seed || cfg.SchemaFile != schema {
		t.Errorf("got seed %q, schema %q", cfg.SeedFile, cfg.SchemaFile)
	}
	for _, field := range []string{"seed_file", "schema_file"} {
		if cws.Sources[field] != SourceEnv {
			t.Errorf("source of %s: got %q", field, cws.Sources[field])
		}
	}
}

func TestExampleConfigParses(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if len(md.Undecoded()) > 0 {
		t.Errorf("example config has unknown keys: %v", md.Undecoded())
	}
	if cfg.ColumnWidth != DefaultColumnWidth || cfg.IDStyle != DefaultIDStyle {
		t.Errorf("example values drifted from defaults: %+v", cfg)
	}
}

func TestResolvePath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work")
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"seed.json", filepath.Join(root, "seed.json")},
		{filepath.Join(root, "abs.json"), filepath.Join(root, "abs.json")},
	}
	for _, tt := range tests {
		if got := resolvePath(root, tt.in); got != tt.want {
			t.Errorf("resolvePath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKBOARD_TEST_DIR", "boards")

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$TASKBOARD_TEST_DIR/seed.json", "boards/seed.json"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEveryFieldHasAValue(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	for _, field := range Fields() {
		if _, ok := cfg.Value(field); !ok {
			t.Errorf("field %s has no value accessor", field)
		}
	}
	if _, ok := cfg.Value("nope"); ok {
		t.Error("unknown field should not resolve")
	}
}

func TestDescribe(t *testing.T) {
	isolate(t)
	cws, err := LoadWithSources(newFlagSet(), []string{"-id-style", "sequence"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	var b strings.Builder
	if err := cws.Describe(&b); err != nil {
		t.Fatalf("Describe: %v", err)
	}
	out := b.String()
	for _, want := range []string{"KEY", "id_style", `"sequence"`, "flag", "column_width", `"30"`, "default", "project_root"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
