// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/pizzalab/pizza-tester/pkg/errors"
	"github.com/pizzalab/pizza-tester/pkg/pizza"
)

// catalogFlags are shared by every command that prints an API response.
func catalogFlags() []cli.Flag {
	return []cli.Flag{outputFlag(), formatFlag(), queryFlag()}
}

// catalogCmd builds a command that validates its input, calls the API once
// and prints the result.
func catalogCmd(base *cli.Command, run func(ctx context.Context, c *pizza.Client, cmd *cli.Command) (any, error)) *cli.Command {
	base.EnableShellCompletion = true
	base.Flags = append(base.Flags, catalogFlags()...)
	base.Action = func(ctx context.Context, cmd *cli.Command) error {
		out, err := parseOutput(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		v, err := run(ctx, client, cmd)
		if err != nil {
			return err
		}
		return out.write(ctx, v)
	}
	return base
}

func listCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:  "list",
		Usage: "List all pizzas",
	}, func(ctx context.Context, c *pizza.Client, _ *cli.Command) (any, error) {
		pizzas, err := c.GetAllPizzas(ctx)
		return pizzaTable(pizzas), err
	})
}

func getCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:      "get",
		Usage:     "Get a pizza by ID",
		ArgsUsage: "<id>",
	}, func(ctx context.Context, c *pizza.Client, cmd *cli.Command) (any, error) {
		id, err := requireArg(cmd, "pizza ID")
		if err != nil {
			return nil, err
		}
		p, err := c.GetPizzaByID(ctx, id)
		return pizzaRow(p), err
	})
}

func withPricesCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:  "with-prices",
		Usage: "List all pizzas with their prices",
	}, func(ctx context.Context, c *pizza.Client, _ *cli.Command) (any, error) {
		pizzas, err := c.GetPizzasWithPrices(ctx)
		return pizzaTable(pizzas), err
	})
}

func ingredientPricesCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:  "ingredient-prices",
		Usage: "List the unit price of every ingredient",
	}, func(ctx context.Context, c *pizza.Client, _ *cli.Command) (any, error) {
		prices, err := c.GetIngredientPrices(ctx)
		return ingredientPriceTable(prices), err
	})
}

func searchCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:      "search",
		Usage:     "Find pizzas containing the given ingredients",
		ArgsUsage: "<ingredient,ingredient,...>",
		Description: `Ingredients are emoji symbols separated by commas, for example:

  pizza search 🍅,🧀`,
	}, func(ctx context.Context, c *pizza.Client, cmd *cli.Command) (any, error) {
		ingredients, err := requireIngredients(cmd)
		if err != nil {
			return nil, err
		}
		pizzas, err := c.SearchPizzasByIngredients(ctx, ingredients)
		return pizzaTable(pizzas), err
	})
}

func priceCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:      "price",
		Usage:     "Get the price of a pizza by ID",
		ArgsUsage: "<id>",
	}, func(ctx context.Context, c *pizza.Client, cmd *cli.Command) (any, error) {
		id, err := requireArg(cmd, "pizza ID")
		if err != nil {
			return nil, err
		}
		res, err := c.GetPizzaPrice(ctx, id)
		return priceRow(res), err
	})
}

func computeCmd() *cli.Command {
	return catalogCmd(&cli.Command{
		Name:      "compute",
		Usage:     "Compute the price of a custom pizza",
		ArgsUsage: "<ingredient,ingredient,...>",
		Description: `Ingredients are emoji symbols separated by commas, for example:

  pizza compute 🍅,🧀,🍄`,
	}, func(ctx context.Context, c *pizza.Client, cmd *cli.Command) (any, error) {
		ingredients, err := requireIngredients(cmd)
		if err != nil {
			return nil, err
		}
		res, err := c.ComputeCustomPizzaPrice(ctx, ingredients)
		return customPriceRow{CustomPriceResult: res, requested: ingredients}, err
	})
}

// requireArg returns the trimmed first argument or an input required error.
func requireArg(cmd *cli.Command, what string) (string, error) {
	arg := strings.TrimSpace(cmd.Args().First())
	if arg == "" {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "input required: "+what,
			map[string]any{"command": cmd.Name})
	}
	return arg, nil
}

// requireIngredients joins all arguments so both "🍅,🧀" and "🍅 🧀" work.
func requireIngredients(cmd *cli.Command) ([]string, error) {
	ingredients := pizza.ParseIngredients(strings.Join(cmd.Args().Slice(), ","))
	if len(ingredients) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "input required: ingredients",
			map[string]any{"command": cmd.Name})
	}
	return ingredients, nil
}
