/*
Package status reads and writes candidate files and tracks what happened to each one.

	+-------------+        +-------------+
	|  ReadText   | -----> |  transform  |
	| (UTF-8 chk) |        | (pkg/text)  |
	+-------------+        +------+------+
	                              |
	                       +------+------+
	                       | WriteFile-  |
	                       |   Atomic    |
	                       +------+------+
	                              |
	                       +------+------+
	                       |  TrackFile  |
	                       +-------------+

🎯 Purpose:
- Scoped reads: the read handle is closed before any write handle is opened
- Encoding check: content that is not valid UTF-8 is rejected with ErrInvalidEncoding
- Atomic writes: content goes to a temp file next to the target, then is renamed over it
- Status tracking: one FileInfo per visited file, in visiting order

🤝 Interfaces:
- FileManager: the read/write half, backed by any billy.Filesystem
- StatusReporter: the tracking half
- FileFormatter: how tracked files are rendered for users

🔍 Example:

	mgr := status.NewManager(osfs.New("/", osfs.WithBoundOS()), status.NewDefaultFileFormatter())

	content, mode, err := mgr.ReadText(ctx, path)
	...
	err = mgr.WriteFileAtomic(ctx, path, []byte(updated), mode)
	mgr.TrackFile(ctx, path, status.FileInfo{Status: status.StatusRewritten, Replacements: n})
*/
package status
