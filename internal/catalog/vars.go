package catalog

import (
	"github.com/MakeNowJust/heredoc"

	"github.com/templer-labs/templer/internal/template"
	"github.com/templer-labs/templer/internal/vars"
)

var (
	expertOnly = vars.WithModes(vars.Expert)
	allOnly    = vars.WithModes()
)

// baseVars are asked by every built-in template.
func baseVars() []vars.Var {
	return []vars.Var{
		vars.StringChoice(vars.ModeVarName,
			"What question mode would you like? (easy/expert/all)?",
			[]string{"easy", "expert", "all"},
			vars.WithTitle("Expert Mode?"),
			vars.WithPage("Begin"),
			vars.WithDefault("easy"),
			vars.WithHelp(heredoc.Doc(`
				In easy mode, you will be asked fewer, more common questions.

				In expert mode, you will be asked to answer more advanced,
				technical questions.

				In all mode, no questions will be skipped, even things like
				author_email, which would normally be a default set in a
				$HOME/.templer file.
			`))),
	}
}

// metadataVars describe the distribution and end up in setup.py.
func metadataVars() []vars.Var {
	return []vars.Var{
		vars.String("version", "Version number for project",
			vars.WithTitle("Version"),
			vars.WithPage("Metadata"),
			vars.WithDefault("1.0"),
			vars.WithHelp(heredoc.Doc(`
				This becomes the version number of the created package. It will be
				set in the egg's setup.py, and may be referred to in other places in
				the generated project.
			`))),
		vars.String("description", "One-line description of the project",
			vars.WithTitle("Description"),
			vars.WithPage("Metadata"),
			vars.WithHelp(heredoc.Doc(`
				This should be a single-line description of your project. It will
				be used in the egg's setup.py.
			`))),
		vars.Text("long_description", "Multi-line description (in ReST)",
			vars.WithTitle("Long Description"),
			vars.WithPage("Metadata"),
			allOnly,
			vars.WithHelp(heredoc.Doc(`
				This should be a full description for your project. It will be
				used in the egg's setup.py.

				It should be entered in reStructuredText format.
			`))),
		vars.String("author", "Name of author for project",
			vars.WithTitle("Author"),
			vars.WithPage("Metadata"),
			allOnly,
			vars.WithHelp(heredoc.Doc(`
				The name of the author of this project. It is used in the egg's
				setup.py and in the generated documentation.
			`))),
		vars.String("author_email", "Email of author for project",
			vars.WithTitle("Author Email"),
			vars.WithPage("Metadata"),
			allOnly,
			vars.WithHelp(heredoc.Doc(`
				The email address of the author of this project. It is used in the
				egg's setup.py and in the generated documentation.
			`))),
		vars.String("keywords", "List of keywords, space-separated",
			vars.WithTitle("Keywords"),
			vars.WithPage("Metadata"),
			allOnly,
			vars.WithHelp(heredoc.Doc(`
				The keywords for this project. They are used in the egg's setup.py
				and categorize the project once it is published.
			`))),
		vars.String("url", "URL of the homepage for this project",
			vars.WithTitle("Project URL"),
			vars.WithPage("Metadata"),
			vars.WithDefault("http://svn.plone.org/svn/collective/"),
			allOnly,
			vars.WithHelp(heredoc.Doc(`
				A URL for the homepage of this project, if it has one. It is used
				in the egg's setup.py.
			`))),
		vars.StringChoice("license_name", "Name of license for the project", licenseKeys(),
			vars.WithTitle("Project License"),
			vars.WithPage("Metadata"),
			vars.WithDefault("GPL"),
			allOnly,
			vars.WithStructures(licenseStructures()),
			vars.WithHelp(heredoc.Doc(`
				The license that this project is issued under. It is used in the
				egg's setup.py, and its text is added under docs/.

				Common choices are 'GPL' for the GNU General Public License, 'ZPL'
				for the Zope Public License, or 'BSD' for the BSD license.
			`)+"\n"+readableLicenseOptions())),
		vars.Boolean("zip_safe", "Can this project be used as a zipped egg? (true/false)",
			vars.WithTitle("Zip-Safe?"),
			vars.WithPage("Metadata"),
			vars.WithDefault(false),
			allOnly,
			vars.WithHelp(heredoc.Doc(`
				Some eggs can be used directly by Python in zipped format; others
				must be unzipped so that their contents can be properly used.

				If unsure, the safest answer is False.
			`))),
	}
}

// namespaceVars are the package names split from a dotted project name.
func namespaceVars() []vars.Var {
	return []vars.Var{
		vars.DottedName(template.NamespacePackageVar, "Name of outer namespace package",
			vars.WithTitle("Namespace Package Name"),
			vars.WithPage("Namespaces"),
			vars.WithDefault("my"),
			expertOnly,
			vars.WithHelp(heredoc.Doc(`
				This is the name of the outer package (Python folder) for this
				project. For example, in 'Products.PloneFormGen', this would be
				'Products'. It is often the name of your company or project, or a
				shared name like 'collective'.
			`))),
		vars.DottedName(template.PackageVar, "Name of the inner namespace package",
			vars.WithTitle("Package Name"),
			vars.WithPage("Namespaces"),
			vars.WithDefault("example"),
			expertOnly,
			vars.WithHelp(heredoc.Doc(`
				This is the name of the innermost package (Python folder) for this
				project. For example, in 'Products.PloneFormGen', this would be
				'PloneFormGen'.
			`))),
	}
}

func namespace2Var() vars.Var {
	return vars.DottedName(template.NamespacePackage2Var, "Name of inner namespace package",
		vars.WithTitle("Namespace 2 Package Name"),
		vars.WithPage("Namespaces"),
		vars.WithDefault("nested"),
		expertOnly,
		vars.WithHelp(heredoc.Doc(`
			This is the name of the inner namespace package (Python folder) for
			this project. For example, in 'plone.app.example', this would be
			'app' ('plone' is the first namespace, and 'example' the package).
		`)))
}

func eggVar() vars.Var {
	return vars.DottedName("egg", "Package name (for namespace support use dots.)",
		vars.WithTitle("Package"),
		vars.WithPage("Namespaces"),
		vars.WithModes(vars.Easy),
		vars.WithHelp(heredoc.Doc(`
			Choose the name of your package.

			If you want to use dots in the package name (namespaces), just
			provide them directly in the name. For example: my.package.
		`)))
}
