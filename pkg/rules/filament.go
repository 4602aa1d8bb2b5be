package rules

func filamentRules() []Rule {
	php := matchSuffixes(".php")

	return []Rule{
		substringRule(
			"filament/no-table-polling", Error,
			"Table polling reloads records on a timer",
			"## filament/no-table-polling\n\n"+
				"`->poll('10s')` on a Filament table re-queries the table for every open\n"+
				"browser tab. Dispatch a refresh event from the mutation side instead:\n\n"+
				"```php\n// good\n$this->dispatch('refresh')->to(ListOrders::class);\n```\n",
			"->poll() on a Filament surface; refresh via events",
			php,
			"->poll(",
		),
		substringRule(
			"filament/options-enum", Warn,
			"Select options belong on an enum",
			"## filament/options-enum\n\n"+
				"Inline `->options([...])` arrays duplicate labels the rest of the app also\n"+
				"needs. Back the field with an enum implementing `HasLabel` and pass the\n"+
				"enum class:\n\n"+
				"```php\n// good\nSelect::make('status')->options(OrderStatus::class)\n```\n",
			"inline options array; let an enum implement HasLabel",
			php,
			"->options([",
		),
	}
}
