/*
Package mutate applies one text change to a list of files, safely.

	+-------------+
	|  Operation  |
	|  (Prepare)  |
	+------+------+
	       |
	+------+------+
	|   Driver    |
	| (Preview +  |
	|  Confirm)   |
	+------+------+
	       |
	+------+------+
	|    Store    |
	|  (Write)    |
	+-------------+

🎯 Purpose:
- Computes the change each file would get before touching anything
- Shows every change as a diff
- Writes only what was confirmed

🔄 Flow:
1. Prepare each path in order; unreadable files are reported and left out
2. Nothing to change ends the run with "No changes needed."
3. Preview every pending change
4. Resolve by Mode: DryRun writes nothing, BulkConfirm asks once,
   PerFileConfirm asks once per file in order
5. Overwrite (or remove) each confirmed file; a failed write is counted and
   the run moves on

🤝 Interfaces:
- Operation: the change itself, built by Replace, RemoveKeyword, AddKeyword,
  RemoveLines, ReplaceLines, AddAfter, AddBefore and RemoveFiles
- confirm.Gate: answers the prompts
- store.FileStore: reads and writes files

🔍 Example:

	d, err := mutate.New(mutate.Options{
		Store:  store.New(false),
		Gate:   confirm.NewConsole(os.Stdin, os.Stdout),
		Logger: logger,
		Mode:   mutate.BulkConfirm,
	})
	result, err := d.Run(ctx, set.Paths(), mutate.Replace("@old", "@new"))
*/
package mutate
