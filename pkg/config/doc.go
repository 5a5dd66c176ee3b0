/*
Package config reads config files into flat key/value mappings.

	            +-------------+
	            |    Load     |
	            | (path→map)  |
	            +------+------+
	                   |
	 +--------+--------+--------+--------+
	 |        |        |        |        |
	INI     YAML     JSON     HCL     TOML
	(default)

🎯 Purpose:
- Turns a config file into a map[string]string for the parameter resolver
- Picks the parser from the file extension, INI for anything unknown
- Treats a missing file as "no settings"

📝 INI files carry no section header. Their content is wrapped in an
implicit default section, `=` and `:` both separate keys from values, and
matching single or double quotes around a value are stripped.

🔍 Example:

	values, err := config.Load(ctx, "config.cfg")
	if err != nil {
		// failure.ErrConfig: the file exists but cannot be used
	}
*/
package config
