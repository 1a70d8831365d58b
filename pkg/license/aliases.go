package license

// aliases maps lowercased surface forms to canonical identifiers.
// Keys must be lowercase; lookup happens after trimming and case-folding.
// The table folds spellings of the same license family only — it never
// equates distinct licenses (MIT and MIT-0 stay separate).
var aliases = map[string]string{
	// MIT
	"mit":             "MIT",
	"mit license":     "MIT",
	"mit licence":     "MIT",
	"the mit license": "MIT",
	"expat":           "MIT",
	"x11":             "MIT",

	// MIT No Attribution
	"mit-0":              "MIT-0",
	"mit no attribution": "MIT-0",

	// Apache
	"apache":                          "Apache-2.0",
	"apache 2":                        "Apache-2.0",
	"apache-2":                        "Apache-2.0",
	"apache 2.0":                      "Apache-2.0",
	"apache-2.0":                      "Apache-2.0",
	"apache2":                         "Apache-2.0",
	"apache license":                  "Apache-2.0",
	"apache license 2.0":              "Apache-2.0",
	"apache license, version 2.0":     "Apache-2.0",
	"apache software license":         "Apache-2.0",
	"apache software license 2.0":     "Apache-2.0",
	"asl 2.0":                         "Apache-2.0",
	"asl2":                            "Apache-2.0",
	"apache license version 2.0":      "Apache-2.0",
	"apache-1.1":                      "Apache-1.1",
	"apache software license 1.1":     "Apache-1.1",

	// BSD family
	"bsd":               "BSD-3-Clause",
	"bsd license":       "BSD-3-Clause",
	"bsd-3-clause":      "BSD-3-Clause",
	"bsd 3-clause":      "BSD-3-Clause",
	"bsd 3 clause":      "BSD-3-Clause",
	"new bsd":           "BSD-3-Clause",
	"new bsd license":   "BSD-3-Clause",
	"modified bsd":      "BSD-3-Clause",
	"bsd-2-clause":      "BSD-2-Clause",
	"bsd 2-clause":      "BSD-2-Clause",
	"bsd 2 clause":      "BSD-2-Clause",
	"simplified bsd":    "BSD-2-Clause",
	"freebsd":           "BSD-2-Clause",
	"0bsd":              "0BSD",
	"zero-clause bsd":   "0BSD",
	"bsd zero clause":   "0BSD",

	// ISC
	"isc":         "ISC",
	"isc license": "ISC",

	// GPL family
	"gpl":                                "GPL-3.0",
	"gnu gpl":                            "GPL-3.0",
	"gplv2":                              "GPL-2.0",
	"gpl-2.0":                            "GPL-2.0",
	"gpl 2.0":                            "GPL-2.0",
	"gpl-2.0-only":                       "GPL-2.0",
	"gpl-2.0+":                           "GPL-2.0",
	"gnu general public license v2":      "GPL-2.0",
	"gnu general public license v2.0":    "GPL-2.0",
	"gplv3":                              "GPL-3.0",
	"gpl-3.0":                            "GPL-3.0",
	"gpl 3.0":                            "GPL-3.0",
	"gpl-3.0-only":                       "GPL-3.0",
	"gpl-3.0+":                           "GPL-3.0",
	"gnu general public license v3":      "GPL-3.0",
	"gnu general public license v3.0":    "GPL-3.0",
	"lgpl":                               "LGPL-3.0",
	"lgplv2.1":                           "LGPL-2.1",
	"lgpl-2.1":                           "LGPL-2.1",
	"lgpl 2.1":                           "LGPL-2.1",
	"lgpl-2.1-only":                      "LGPL-2.1",
	"gnu lesser general public license v2.1": "LGPL-2.1",
	"lgplv3":                             "LGPL-3.0",
	"lgpl-3.0":                           "LGPL-3.0",
	"lgpl 3.0":                           "LGPL-3.0",
	"lgpl-3.0-only":                      "LGPL-3.0",
	"gnu lesser general public license v3":   "LGPL-3.0",
	"agpl":                               "AGPL-3.0",
	"agplv3":                             "AGPL-3.0",
	"agpl-3.0":                           "AGPL-3.0",
	"agpl-3.0-only":                      "AGPL-3.0",
	"gnu affero general public license v3":   "AGPL-3.0",

	// Mozilla
	"mpl":                         "MPL-2.0",
	"mpl-2.0":                     "MPL-2.0",
	"mpl 2.0":                     "MPL-2.0",
	"mozilla public license 2.0":  "MPL-2.0",
	"mpl-1.1":                     "MPL-1.1",
	"mozilla public license 1.1":  "MPL-1.1",

	// Python
	"psf":                                "PSF-2.0",
	"psf-2.0":                            "PSF-2.0",
	"psfl":                               "PSF-2.0",
	"python software foundation license": "PSF-2.0",
	"python-2.0":                         "PSF-2.0",

	// Public-domain-ish
	"unlicense":     "Unlicense",
	"the unlicense": "Unlicense",
	"public domain": "Public-Domain",
	"cc0":           "CC0-1.0",
	"cc0-1.0":       "CC0-1.0",

	// Creative Commons
	"cc-by-4.0":    "CC-BY-4.0",
	"cc by 4.0":    "CC-BY-4.0",
	"cc-by-sa-4.0": "CC-BY-SA-4.0",

	// Misc
	"zlib":            "Zlib",
	"zlib license":    "Zlib",
	"zlib/libpng":     "Zlib",
	"wtfpl":           "WTFPL",
	"artistic-2.0":    "Artistic-2.0",
	"artistic 2.0":    "Artistic-2.0",
	"artistic license 2.0": "Artistic-2.0",
	"epl-1.0":         "EPL-1.0",
	"eclipse public license 1.0": "EPL-1.0",
	"epl-2.0":         "EPL-2.0",
	"eclipse public license 2.0": "EPL-2.0",
	"eupl-1.2":        "EUPL-1.2",
	"bsl-1.0":         "BSL-1.0",
	"boost software license 1.0": "BSL-1.0",
	"ofl-1.1":         "OFL-1.1",
	"sil open font license 1.1":  "OFL-1.1",
	"cddl-1.0":        "CDDL-1.0",
	"blueoak-1.0.0":   "BlueOak-1.0.0",
	"blue oak model license 1.0.0": "BlueOak-1.0.0",
}
