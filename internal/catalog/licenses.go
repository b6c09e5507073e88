package catalog

import (
	"fmt"
	"strings"
)

// License is one entry of the license table offered by license_name.
type License struct {
	Key        string
	Classifier string
	// Dir is the license tree under structures/licenses.
	Dir string
}

// Licenses lists the selectable licenses in display order.
var Licenses = []License{
	{"ASL", "License :: OSI Approved :: Apache Software License", "asl"},
	{"BSD", "License :: OSI Approved :: BSD License", "bsd"},
	{"EFL", "License :: Eiffel Forum License (EFL)", "efl"},
	{"FDL", "License :: OSI Approved :: GNU Free Documentation License (FDL)", "fdl"},
	{"GPL", "License :: OSI Approved :: GNU General Public License (GPL) v2", "gpl2"},
	{"GPL3", "License :: OSI Approved :: GNU General Public License (GPL) v3", "gpl3"},
	{"LGPL", "License :: OSI Approved :: GNU Library or Lesser General Public License (LGPL)", "lgpl"},
	{"MIT", "License :: OSI Approved :: MIT License", "mit"},
	{"MPL", "License :: OSI Approved :: Mozilla Public License 1.0 (MPL)", "mpl"},
	{"MPL11", "License :: OSI Approved :: Mozilla Public License 1.1 (MPL 1.1)", "mpl11"},
	{"NPL", "License :: Netscape Public License 1.1 (NPL)", "npl"},
	{"ZPL", "License :: OSI Approved :: Zope Public License", "zpl"},
}

// StructureName is the structure holding the license's files.
func (l License) StructureName() string { return strings.ToLower(l.Key) }

// Classifier returns the Trove classifier for a license key, in any case.
func Classifier(key string) (string, bool) {
	for _, l := range Licenses {
		if strings.EqualFold(l.Key, key) {
			return l.Classifier, true
		}
	}
	return "", false
}

func licenseKeys() []string {
	keys := make([]string, len(Licenses))
	for i, l := range Licenses {
		keys[i] = l.Key
	}
	return keys
}

// licenseStructures maps each lower-cased key to its own structure.
func licenseStructures() map[string][]string {
	m := make(map[string][]string, len(Licenses))
	for _, l := range Licenses {
		m[l.StructureName()] = []string{l.StructureName()}
	}
	return m
}

func readableLicenseOptions() string {
	var b strings.Builder
	b.WriteString("The following licenses are available:\n\n")
	for _, l := range Licenses {
		fmt.Fprintf(&b, "%s -- %s\n", l.Key, l.Classifier)
	}
	return b.String()
}
