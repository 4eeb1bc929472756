// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It walks the modules root, parses every declaration file and
// translates the decoded blocks into the format-agnostic config.Declaration.
//
// The same decoder also accepts HCL JSON syntax, which is how declarations
// injected by scripts are brought through the exact same schema as files.
package hcl
