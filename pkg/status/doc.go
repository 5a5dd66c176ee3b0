/*
Package status reports what a run did to its output files.

	+-----------+      +-----------+      +-----------+
	| Snapshot  | ---> |  Engine   | ---> |  Compare  |
	|  (before) |      |  (write)  |      |  (after)  |
	+-----------+      +-----------+      +-----+-----+
	                                            |
	                                      +-----+-----+
	                                      |  Tracker  |
	                                      | (UI/logs) |
	                                      +-----------+

🎯 Purpose:
- Records whether an output file existed, and its checksum, before a run
- Classifies the output afterwards as new, modified or unchanged
- Collects results from concurrent runs
- Formats results for the console

🔄 Flow:
1. Take a Snapshot of the output path
2. Let the engine rewrite the file
3. Compare the snapshot with the file on disk
4. Track the resulting FileInfo
*/
package status
