package cli

import (
	"github.com/MakeNowJust/heredoc"
)

var usageText = heredoc.Doc(`

	Usage:

	    templer <template> <output-name> [var1=value] ... [varN=value]

	    templer --help                Full help
	    templer --list                List template verbosely, with details
	    templer --make-config-file    Output .templer prefs file
	    templer --version             Print installed version

	%s
	Warning:  use of the --svn-repository argument is not allowed with this script

	For further help information, please invoke this script with the
	option "--help".
`)

var descriptionText = heredoc.Doc(`

	This script allows you to create basic skeletons for Python projects
	and buildouts based on best-practice templates.


	Invoking this script
	--------------------

	Basic usage::

	    templer <template>

	(To get a list of the templates, run the script without any arguments;
	for a verbose list with full descriptions, run ''templer --list'')

	For example::

	    templer basic_namespace

	To create a Python project with one namespace package. This will prompt
	you for the name of your project, and for other information about it.

	If you want to specify your output name (resulting project, egg, or
	buildout, depending on the template being used), you can also do so::

	    templer <template> <output-name>

	For example::

	    templer basic_namespace my.example

	In addition, you can pass variables to this that would be requested
	by that template, and these will then be used. This is an advanced
	feature mostly useful for scripted use of this::

	    templer basic_namespace my.example author_email=jane@example.com

	(You can specify as many of these as you want, in name=value pairs.
	To get the list of variables that a template expects, run with -v.)


	Interactive Help
	----------------

	While being prompted on each question, you can enter with a single
	question mark to receive interactive help for that question.

	For example::

	  Description (One-line description of the project) ['']: ?

	  |  This should be a single-line description of your project. It will
	  |  be used in the egg's setup.py.


	Providing defaults
	------------------

	It is also possible to set up default values to be used for any template
	by creating a file called ''.templer'' in your home directory. This file
	should be in INI format.

	For example, our ''$HOME/.templer'' could contain::

	    [DEFAULT]
	    author_email = jane@example.com
	    license_name = GPL
	    master_keywords = my common keywords here

	    [recipe]
	    license_name = BSD
	    keywords = %(master_keywords)s additional keywords

	You can generate a starter .templer file by running this script with
	the --make-config-file option. This output can be redirected into
	your ''.templer'' file::

	    templer --make-config-file > /path/to/home/.templer

	Notes:

	1) A setting in a template-specific section, like [recipe] above, is
	   only used for that template.

	2) For a common setting, like our email address, we can set this in
	   a section called DEFAULT; settings made in this section are used
	   for all templates.

	3) We can make a setting in DEFAULT and then override it for a
	   particular template. In this example, we might generally prefer the
	   GPL, but issue our recipes under the BSD license.

	4) You can refer to variables from the same section or from the
	   DEFAULT section using %(name)s references. In this example,
	   we have a common set of keywords set in DEFAULT and extend it
	   for the recipe template by referring to the master list.


	Templates from other directories
	--------------------------------

	Directories listed in ''template_paths'' (in the templer config file,
	or the TEMPLER_TEMPLATE_PATHS environment variable) are searched for
	template.yaml manifests. Each one adds a template next to the
	built-in ones.


	The --svn-repository argument
	-----------------------------

	The --svn-repository argument accepted by older project generators is
	not allowed. It will raise an error.


	To see the templates supported, run this script without any options.
	For a verbose listing with help, use ''templer --list''.
`)

const interactiveHelpText = `
If at any point, you need additional help for a question, you can enter
'?' and press RETURN.
`
