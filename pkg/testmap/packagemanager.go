package testmap

import "io/fs"

// PackageManager identifies the JavaScript package manager a project uses.
type PackageManager string

const (
	Bun  PackageManager = "bun"
	Pnpm PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Npm  PackageManager = "npm"
)

// DetectPackageManager picks the package manager from lockfiles. Priority is
// bun over pnpm over yarn; npm is the fallback when no lockfile decides.
func DetectPackageManager(fsys fs.FS) PackageManager {
	exists := func(name string) bool {
		_, err := fs.Stat(fsys, name)
		return err == nil
	}

	switch {
	case exists("bun.lockb") || exists("bun.lock"):
		return Bun
	case exists("pnpm-lock.yaml"):
		return Pnpm
	case exists("yarn.lock"):
		return Yarn
	default:
		return Npm
	}
}

// RunScript returns the argv that runs a package.json script.
func (pm PackageManager) RunScript(script string) []string {
	switch pm {
	case Bun:
		return []string{"bun", "run", script}
	case Pnpm:
		return []string{"pnpm", "run", script}
	case Yarn:
		return []string{"yarn", script}
	default:
		return []string{"npm", "run", script}
	}
}

// Exec returns the argv that runs a locally installed binary.
func (pm PackageManager) Exec(bin string, args ...string) []string {
	var argv []string
	switch pm {
	case Bun:
		argv = []string{"bunx", bin}
	case Pnpm:
		argv = []string{"pnpm", "exec", bin}
	case Yarn:
		argv = []string{"yarn", bin}
	default:
		argv = []string{"npx", bin}
	}
	return append(argv, args...)
}
