/*
Package config loads the optional markfix defaults file.

	            +-------------+
	            |   Config    |
	            |  (defaults) |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Keeps per-repository scan defaults (keywords, filters, diff context) out of
  the command line
- Picks the parser from the file extension

🔄 Flow:
1. Reads the file named by --config, or .markfix.yaml when present
2. Parses it with the parser registered for its extension
3. Validate fills defaults and checks glob patterns
4. Command line flags override whatever the file set

📝 Example .markfix.yaml:

	path: .
	keywords: [pytest]
	exclude: [legacy]
	ignore: ["vendor/**"]
	context_lines: 3
	backup: true
*/
package config
