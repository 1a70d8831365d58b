package python

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// depSpecRE captures the package name and an optional exact pin from a
// requirement line. Range specifiers (>=, ~=, !=) name a dependency
// without fixing its version.
var depSpecRE = regexp.MustCompile(`^([A-Za-z0-9][-A-Za-z0-9._]*)(?:\[[^\]]*\])?\s*(?:==\s*([^,;#\s]+))?`)

// parseRequirements reads declared dependencies from a requirements file.
// Comments, pip options, and URL/VCS requirements are skipped, matching
// what a plain name-based audit can resolve.
func parseRequirements(path string) ([]declared, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	var result []declared

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '-' {
			continue
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		if idx := strings.Index(line, "#"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}

		m := depSpecRE.FindStringSubmatch(line)
		if len(m) < 2 || m[1] == "" {
			continue
		}
		name := normalizeName(m[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, declared{Name: name, Pin: m[2]})
	}

	return result, scanner.Err()
}
