package rules

import "regexp"

var (
	debugCallPattern = regexp.MustCompile(`\b(dd|ddd|dump|ray|var_dump)\s*\(`)
	envCallPattern   = regexp.MustCompile(`\benv\s*\(`)
	constFamily      = regexp.MustCompile(`\bconst\s+((?:STATUS|TYPE|STATE|ROLE)_[A-Z0-9_]+)`)
)

// phpRules apply to every Laravel backend regardless of UI integration.
func phpRules() []Rule {
	php := matchSuffixes(".php")

	return []Rule{
		regexRule(
			"php/no-debug-calls", Error,
			"Debug helpers must not reach committed code",
			"## php/no-debug-calls\n\n"+
				"`dd()`, `dump()`, `ray()` and `var_dump()` halt or pollute responses and\n"+
				"leak internals when they ship. Remove them before committing; use proper\n"+
				"logging for anything worth keeping.\n\n"+
				"```php\n// bad\ndd($order);\n\n// good\nLog::debug('order state', ['order' => $order->id]);\n```\n",
			"%s() debug call left in code",
			php, debugCallPattern,
		),
		regexRule(
			"php/env-outside-config", Error,
			"env() must only be called from config files",
			"## php/env-outside-config\n\n"+
				"Once the configuration is cached, `env()` returns `null` outside the\n"+
				"`config/` directory. Read environment values in a config file and fetch\n"+
				"them with `config()` everywhere else.\n\n"+
				"```php\n// bad\n$key = env('STRIPE_KEY');\n\n// good\n$key = config('services.stripe.key');\n```\n",
			"env() called outside config/; use config()",
			notUnder("config", php), envCallPattern,
		),
		regexRule(
			"php/prefer-enums", Error,
			"Status and type constants belong in backed enums",
			"## php/prefer-enums\n\n"+
				"Families of `STATUS_*`, `TYPE_*`, `STATE_*` or `ROLE_*` class constants\n"+
				"scatter labels and behavior. Define a backed enum with methods (`label()`,\n"+
				"`color()`) so every variant carries its own presentation.\n\n"+
				"```php\n// bad\nconst STATUS_ACTIVE = 'active';\n\n// good\nenum Status: string { case Active = 'active'; }\n```\n",
			"constant %s; use a backed enum with methods",
			php, constFamily,
		),
	}
}
