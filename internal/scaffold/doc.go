// Package scaffold copies a file tree into an output directory. Path segments
// may contain +name+ placeholders, which are replaced by variable values; a
// segment that becomes empty drops that file or directory. Files ending in
// .tmpl or _tmpl are executed as Go text templates with the variables as
// data and written without the suffix. Everything goes through a
// writer.Writer so the conflict policy applies to every file.
package scaffold
