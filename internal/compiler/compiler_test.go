package compiler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/programme-lv/minijudge/internal/compiler"
	"github.com/programme-lv/minijudge/internal/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesTOML = `
[[compilers]]
name = "g++"
extensions = [".cpp", ".cc"]
options = "g++ -O2 -o {name} {file}"
executable_file = "{name}"

[[compilers]]
name = "python3"
extensions = ["py"]
runtime = "python3 {file}"

[[compilers]]
name = "pypy3"
extensions = [".py"]
runtime = "pypy3 {file}"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func TestLoadTOMLKeepsFileOrder(t *testing.T) {
	path := writeFile(t, t.TempDir(), "compilers.toml", rulesTOML)

	rules, err := compiler.Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 3)

	rule, err := rules.ForFile("/tmp/sol.py")
	require.NoError(t, err)
	assert.Equal(t, "python3", rule.Name, "first matching rule wins")

	rule, err = rules.ForFile("main.cc")
	require.NoError(t, err)
	assert.Equal(t, "g++", rule.Name)
	assert.False(t, rule.Interpreted())

	rule, err = rules.Select("pypy3", "sol.py")
	require.NoError(t, err)
	assert.Equal(t, "pypy3", rule.Name)
}

func TestLoadJSONObjectIsSortedByName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "compilers.json", `{
		"python3": {"extensions": [".py"], "runtime": "python3 {file}"},
		"cpython": {"extensions": [".py"], "runtime": "python {file}"}
	}`)

	rules, err := compiler.Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "cpython", rules[0].Name)

	rule, err := rules.ForFile("a.py")
	require.NoError(t, err)
	assert.Equal(t, "cpython", rule.Name)
}

func TestLoadJSONObjectOriginalPlaceholders(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "compilers.json", `{
		"python": {"extensions": [".py"], "runtime": "python3 {0}"},
		"copy": {
			"extensions": [".src"],
			"options": "sh -c 'cp \"$0\" \"$0.bin\" && chmod +x \"$0.bin\"' {0}",
			"executable_file": "{0}.src.bin"
		}
	}`)

	rules, err := compiler.Load(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, []string{"copy", "python"}, []string{rules[0].Name, rules[1].Name})

	py, err := rules.ByName("python")
	require.NoError(t, err)
	source := writeFile(t, dir, "a.py", "print(1)\n")
	prep, err := compiler.New(nil).Compile(context.Background(), py, source, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", source}, prep.Argv)

	cp, err := rules.ByName("copy")
	require.NoError(t, err)
	assert.Equal(t, "{name}.src.bin", cp.ExecutableFile)
	source = writeFile(t, dir, "sol.src", "#!/bin/sh\necho hi\n")
	prep, err = compiler.New(nil).Compile(context.Background(), cp, source, "")
	require.NoError(t, err)
	require.True(t, prep.Ready, "compile log: %+v", prep.Log)
	assert.Equal(t, filepath.Join(dir, "sol.src.bin"), prep.Artifact)
	assert.Equal(t, []string{prep.Artifact}, prep.Argv)
}

func TestLoadJSONList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "compilers.json", `{"compilers": [
		{"name": "sh", "extensions": [".sh"], "runtime": "sh {file}"}
	]}`)

	rules, err := compiler.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sh", rules[0].Name)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "compilers.yaml", `
compilers:
  - name: go
    extensions: [".go"]
    options: "go build -o {name} {file}"
    executable_file: "{name}"
`)

	rules, err := compiler.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "go", rules[0].Name)
	assert.Equal(t, "{name}", rules[0].ExecutableFile)
}

func TestLoadRejectsIncompleteRules(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"no-runtime.toml":    "[[compilers]]\nname = \"x\"\nextensions = [\".x\"]\n",
		"no-executable.toml": "[[compilers]]\nname = \"x\"\nextensions = [\".x\"]\noptions = \"cc {file}\"\n",
		"empty.toml":         "",
	}
	for name, content := range cases {
		_, err := compiler.Load(writeFile(t, dir, name, content))
		assert.ErrorIs(t, err, compiler.ErrInvalidRules, name)
	}
}

func TestForFileWithoutMatch(t *testing.T) {
	rules := compiler.Rules{{Name: "sh", Extensions: []string{".sh"}, Runtime: "sh {file}"}}

	_, err := rules.ForFile("sol.rb")
	assert.ErrorIs(t, err, compiler.ErrNoCompiler)

	_, err = rules.ForFile("Makefile")
	assert.ErrorIs(t, err, compiler.ErrNoCompiler)

	_, err = rules.ByName("ruby")
	assert.ErrorIs(t, err, compiler.ErrNoCompiler)
}

func TestCompileInterpretedSubstitutesPerArgument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my dir")
	require.NoError(t, os.Mkdir(dir, 0o755))
	source := writeFile(t, dir, "sol.sh", "echo hi\n")

	rule := compiler.Rule{Name: "sh", Extensions: []string{".sh"}, Runtime: "sh -e {file}"}
	prep, err := compiler.New(nil).Compile(context.Background(), rule, source, "")
	require.NoError(t, err)

	assert.True(t, prep.Ready)
	assert.Equal(t, []string{"sh", "-e", source}, prep.Argv)
	assert.Empty(t, prep.Artifact)
	assert.Nil(t, prep.Log)
}

func TestCompileProducesExecutable(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "sol.src", "#!/bin/sh\necho compiled\n")

	rule := compiler.Rule{
		Name:           "copy",
		Extensions:     []string{".src"},
		Options:        "sh -c 'cp \"$0\" \"$1\" && chmod +x \"$1\"' {file} {name}.bin",
		ExecutableFile: "{name}.bin",
	}
	prep, err := compiler.New(nil).Compile(context.Background(), rule, source, "")
	require.NoError(t, err)

	require.True(t, prep.Ready)
	assert.Equal(t, filepath.Join(dir, "sol.bin"), prep.Artifact)
	assert.Equal(t, []string{prep.Artifact}, prep.Argv)
	require.NotNil(t, prep.Log)
	assert.Zero(t, prep.Log.ExitCode)
	assert.FileExists(t, prep.Artifact)
}

func TestCompileWithRuntimeTemplate(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "Main.src", "class")

	rule := compiler.Rule{
		Name:           "fakejava",
		Extensions:     []string{".src"},
		Options:        "sh -c 'touch \"$0\"' {name}.class",
		ExecutableFile: "{name}.class",
		Runtime:        "java -cp . Main",
	}
	prep, err := compiler.New(nil).Compile(context.Background(), rule, source, "")
	require.NoError(t, err)

	require.True(t, prep.Ready)
	assert.Equal(t, []string{"java", "-cp", ".", "Main"}, prep.Argv)
	assert.Equal(t, filepath.Join(dir, "Main.class"), prep.Artifact)
}

func TestCompileFailureIsNotReady(t *testing.T) {
	source := writeFile(t, t.TempDir(), "bad.src", "")

	rule := compiler.Rule{
		Name:           "failing",
		Extensions:     []string{".src"},
		Options:        "sh -c 'echo syntax error >&2; exit 1'",
		ExecutableFile: "{name}",
	}
	prep, err := compiler.New(nil).Compile(context.Background(), rule, source, "")
	require.NoError(t, err)

	assert.False(t, prep.Ready)
	assert.Empty(t, prep.Argv)
	require.NotNil(t, prep.Log)
	assert.Equal(t, int64(1), prep.Log.ExitCode)
	assert.Contains(t, prep.Log.Stderr, "syntax error")
}

func TestCompileWithoutArtifactIsNotReady(t *testing.T) {
	source := writeFile(t, t.TempDir(), "quiet.src", "")

	rule := compiler.Rule{Name: "noop", Extensions: []string{".src"}, Options: "true", ExecutableFile: "{name}.out"}
	prep, err := compiler.New(nil).Compile(context.Background(), rule, source, "")
	require.NoError(t, err)
	assert.False(t, prep.Ready)
}

func TestCompileMissingCompilerIsError(t *testing.T) {
	source := writeFile(t, t.TempDir(), "a.src", "")

	rule := compiler.Rule{Name: "ghost", Extensions: []string{".src"}, Options: "no-such-compiler-xyz {file}", ExecutableFile: "{name}"}
	_, err := compiler.New(nil).Compile(context.Background(), rule, source, "")
	assert.Error(t, err)
}

func TestFindSearchOrder(t *testing.T) {
	work := t.TempDir()
	conf := t.TempDir()
	t.Chdir(work)
	t.Setenv("XDG_CONFIG_HOME", conf)
	dirs := xdg.NewXDGDirs()

	_, err := compiler.Find("", dirs)
	assert.ErrorIs(t, err, compiler.ErrConfigNotFound)

	require.NoError(t, os.MkdirAll(filepath.Join(conf, "minijudge"), 0o755))
	user := writeFile(t, filepath.Join(conf, "minijudge"), "compilers.toml", rulesTOML)
	path, err := compiler.Find("", dirs)
	require.NoError(t, err)
	assert.Equal(t, user, path)

	writeFile(t, work, "compilers.json", `{}`)
	path, err = compiler.Find("", dirs)
	require.NoError(t, err)
	assert.Equal(t, "compilers.json", path)

	_, err = compiler.Find(filepath.Join(work, "missing.toml"), dirs)
	assert.ErrorIs(t, err, compiler.ErrConfigNotFound)
}
