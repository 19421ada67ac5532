// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the Go sources. It reports
// keys passed to i18n.T that no locale defines, keys of the primary locale
// that nothing references and keys a secondary locale lacks.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var (
	// i18n.T("some.key", ...)
	translateCall = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// any literal shaped like a key; a trailing dot marks a prefix that is
	// completed at runtime, e.g. "identity.source."+src.String()
	keyLiteral = regexp.MustCompile(`"([a-z][a-z0-9_]*\.(?:[a-z0-9_]+\.?)*)"`)
)

// Sources holds what the Go files reference.
type Sources struct {
	// Translated are keys passed directly to i18n.T.
	Translated map[string][]string
	// Literals are all key shaped strings, prefixes included.
	Literals map[string]struct{}
}

// Report is the outcome of one lint run. Slices are sorted.
type Report struct {
	Primary  string
	Unknown  []string
	Orphaned []string
	Missing  map[string][]string
	Extra    map[string][]string
}

// Failed is true for problems that show up as raw keys at runtime.
func (r Report) Failed() bool {
	if len(r.Unknown) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	root := pflag.String("root", ".", "module root to scan")
	locales := pflag.String("locales", "internal/i18n/locales", "directory of the locale files")
	primary := pflag.String("primary", "active.en.yaml", "locale every other locale is compared with")
	pflag.Parse()

	fmt.Println("🔍 Running i18n linter...")
	report, err := Lint(*root, filepath.Join(*root, *locales), *primary)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	report.Print(os.Stdout)
	if report.Failed() {
		os.Exit(1)
	}
}

// Lint scans root and compares the result with the locale files.
func Lint(root, localesDir, primary string) (Report, error) {
	src, err := ScanSources(root)
	if err != nil {
		return Report{}, fmt.Errorf("scanning sources: %w", err)
	}
	primaryKeys, err := LoadLocale(filepath.Join(localesDir, primary))
	if err != nil {
		return Report{}, fmt.Errorf("loading primary locale %s: %w", primary, err)
	}

	r := Report{Primary: primary, Missing: map[string][]string{}, Extra: map[string][]string{}}
	for key := range src.Translated {
		if _, ok := primaryKeys[key]; !ok {
			r.Unknown = append(r.Unknown, key)
		}
	}
	for key := range primaryKeys {
		if !src.References(key) {
			r.Orphaned = append(r.Orphaned, key)
		}
	}

	files, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		return Report{}, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primary {
			continue
		}
		keys, err := LoadLocale(file)
		if err != nil {
			return Report{}, fmt.Errorf("loading locale %s: %w", name, err)
		}
		r.Missing[name] = difference(primaryKeys, keys)
		r.Extra[name] = difference(keys, primaryKeys)
	}

	slices.Sort(r.Unknown)
	slices.Sort(r.Orphaned)
	return r, nil
}

// References reports whether key is named literally or by a prefix.
func (s Sources) References(key string) bool {
	if _, ok := s.Literals[key]; ok {
		return true
	}
	for lit := range s.Literals {
		if strings.HasSuffix(lit, ".") && strings.HasPrefix(key, lit) {
			return true
		}
	}
	return false
}

// ScanSources reads all non test Go files below root. Directories starting
// with "_" or "." and the tools directory are skipped.
func ScanSources(root string) (Sources, error) {
	src := Sources{Translated: map[string][]string{}, Literals: map[string]struct{}{}}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range translateCall.FindAllStringSubmatch(line, -1) {
				if strings.HasSuffix(m[1], ".") {
					continue
				}
				src.Translated[m[1]] = append(src.Translated[m[1]], fmt.Sprintf("%s:%d", path, i+1))
			}
			for _, m := range keyLiteral.FindAllStringSubmatch(line, -1) {
				src.Literals[m[1]] = struct{}{}
			}
		}
		return nil
	})
	return src, err
}

// LoadLocale returns the keys of a locale file. Nested maps are flattened
// with dots, the bundled locales use flat quoted keys.
func LoadLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := map[string]struct{}{}
	flatten("", data, keys)
	return keys, nil
}

func flatten(prefix string, node any, keys map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		flatten(k, v, keys)
	}
}

func difference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

func (r Report) Print(w io.Writer) {
	section := func(title string, items []string, format string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  ✨ None found.")
		}
		for _, item := range items {
			fmt.Fprintf(w, format, item)
		}
		fmt.Fprintln(w)
	}

	section("Unknown keys (used in code, missing in "+r.Primary+")", r.Unknown, "  - Unknown: %s\n")
	section("Orphaned keys (in "+r.Primary+", never referenced)", r.Orphaned, "  - Orphaned: %s\n")

	names := make([]string, 0, len(r.Missing))
	for name := range r.Missing {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		section("Missing keys in "+name, r.Missing[name], "  - Missing: %s\n")
		if extra := r.Extra[name]; len(extra) > 0 {
			section("Extra keys in "+name, extra, "  - Extra: %s\n")
		}
	}

	switch {
	case r.Failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}
