/*
Package config holds the settings of a formaturl run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- One explicit struct passed to the walker and rewriter at call time
- Optional config file, format chosen by extension through the Parser registry
- Defaults and validation in one place (Validate)

⚙️ Fields:
- root: directory to scan, relative to the config file (default ".")
- extension: file name suffix to select (default ".ts")
- ignore: doublestar globs relative to root
- prefix: literal that starts a resource path (default "/resource/")
- boundary: "token" stops the capture at whitespace, quotes or line breaks; "line" runs to end of line
- dry_run, diff, fail_fast: run behaviour

🔍 Example:

	cfg, err := config.Load(ctx, ".formaturl.yaml")
	if err != nil {
		return err
	}

	rule, err := cfg.Rule()
*/
package config
