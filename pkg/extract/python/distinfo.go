package python

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// dist is one installed distribution read from a *.dist-info directory.
type dist struct {
	Name     string
	Version  string
	Licenses []string
	Path     string
}

// classifierPrefixes are stripped from trove license classifiers so that
// "License :: OSI Approved :: MIT License" contributes "MIT License".
var classifierPrefixes = []string{
	"License :: OSI Approved ::",
	"License ::",
}

// readDistInfo parses the METADATA file inside a dist-info directory.
// Returns false when the directory carries no usable package identity.
func readDistInfo(dir string) (dist, bool) {
	d := dist{Path: dir}

	// The directory name encodes name-version; METADATA overrides it
	// when readable.
	base := strings.TrimSuffix(filepath.Base(dir), ".dist-info")
	if idx := strings.LastIndex(base, "-"); idx > 0 {
		d.Name = base[:idx]
		d.Version = base[idx+1:]
	} else {
		d.Name = base
	}

	f, err := os.Open(filepath.Join(dir, "METADATA"))
	if err != nil {
		return d, d.Name != ""
	}
	defer f.Close()

	var license, expression string
	var classifiers []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// Header section ends; the body is the long description.
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			d.Name = value
		case "Version":
			d.Version = value
		case "License":
			license = value
		case "License-Expression":
			expression = value
		case "Classifier":
			if c, ok := licenseClassifier(value); ok {
				classifiers = append(classifiers, c)
			}
		}
	}

	// License-Expression (PEP 639) supersedes the free-form License
	// field when both are present.
	switch {
	case expression != "":
		d.Licenses = append(d.Licenses, expression)
	case license != "" && !strings.EqualFold(license, "unknown"):
		d.Licenses = append(d.Licenses, license)
	}
	d.Licenses = append(d.Licenses, classifiers...)

	return d, d.Name != ""
}

// licenseClassifier extracts the license name from a trove classifier.
func licenseClassifier(value string) (string, bool) {
	for _, prefix := range classifierPrefixes {
		if strings.HasPrefix(value, prefix) {
			c := strings.TrimSpace(strings.TrimPrefix(value, prefix))
			return c, c != ""
		}
	}
	return "", false
}
