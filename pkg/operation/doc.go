/*
Package operation runs the replace engine over the files a parameter set names.

	+-------------+
	|   Expand    |
	| (glob→sets) |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	| (errgroup)  |
	+------+------+
	       |
	+------+------+
	|   Execute   |
	|  (engine)   |
	+------+------+

🎯 Purpose:
- Expands an input pattern into one parameter set per file
- Runs each set through its own engine, several at a time
- Reports what happened to every output file

🔄 Flow:
1. ExpandInputs resolves the input pattern
2. Runner rejects sets that share an output path
3. Execute validates, snapshots, creates the output and transforms the input
4. Results are tracked by the status package and printed by the log package

⚡ Key Responsibilities:
- Keeping missing parameters from touching the file system
- Bounding concurrency with --jobs
- Returning every result even when one file fails
*/
package operation
