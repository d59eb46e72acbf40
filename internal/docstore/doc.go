// Package docstore loads and saves the structured documents vibery shares
// with other tools: .claude/settings.json, .claude/metadata.json, .mcp.json,
// and kit fragments.
//
// Loading is deliberately forgiving. A missing, unreadable, or unparsable
// document loads as an empty [Document] so an install can always make
// progress; the parse error is only logged at debug level. Saving creates
// parent directories, writes keys in sorted order, and replaces the file
// atomically. There is no locking: a Load followed by a Save is not atomic
// with respect to other processes.
//
// The codec is chosen by file extension: .yaml/.yml use gopkg.in/yaml.v3,
// .toml uses github.com/pelletier/go-toml/v2, anything else is JSON.
package docstore
