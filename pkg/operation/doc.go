/*
Package operation drives a rewrite run: walk, transform, write, report.

	+-------------+
	|   Walker    |
	|  (Source)   |
	+------+------+
	       | one path at a time
	+------+------+
	|  Rewrite    |
	| (Transform) |
	+------+------+
	       |
	+------+------+
	|   Status    |
	| (Storage)   |
	+-------------+

🎯 Purpose:
- Pulls candidate paths from a FileSource lazily and processes each one fully before the next
- Applies the compiled rule through a text.TextReplacer
- Delegates reads and atomic writes to status.FileManager
- Records one outcome per file and prints one progress line per file

⚡ Failure policy:
- Root errors and cancellation abort the run
- Anything else is recorded against the file and the walk continues
- With FailFast the first file failure aborts the run instead
- A run with failed files returns ErrFilesFailed after the summary is printed

🔍 Example:

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:   cfg,
		Source:   walker,
		Files:    mgr,
		Status:   mgr,
		Replacer: text.NewResourceReplacer(),
		Console:  console,
	})
	if err != nil {
		return err
	}

	err = operation.NewRunner().Run(ctx, op)
	report := op.Report(ctx)
*/
package operation
