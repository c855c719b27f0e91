package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/usdc-delegate/internal/session"

	"github.com/spf13/cobra"
)

var (
	delegateAddress string
	amount          string
	unlimited       bool
)

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a delegate to spend USDC from your wallet",
	Example: `  usdc-delegate approve --delegate <address> --amount 25
  usdc-delegate approve --delegate <address> --unlimited --network devnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if unlimited && amount != "" {
			return errors.New("--amount and --unlimited are mutually exclusive")
		}
		return withConnectedSession(cmd.Context(), func(ctx context.Context, c *session.Controller) error {
			if err := c.SetDelegateAddress(delegateAddress); err != nil {
				return err
			}
			if unlimited {
				if err := c.SetUnlimited(); err != nil {
					return err
				}
			} else if err := c.SetAmount(amount); err != nil {
				return err
			}

			fmt.Println(promptStyle.Render(fmt.Sprintf("Approving %s USDC for %s...", c.State().Amount, delegateAddress)))
			_, err := c.Approve(ctx)
			return printOutcome(c, err)
		})
	},
}

var revokeCmd = &cobra.Command{
	Use:     "revoke",
	Short:   "Revoke any delegation on your USDC account",
	Example: `  usdc-delegate revoke --network devnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnectedSession(cmd.Context(), func(ctx context.Context, c *session.Controller) error {
			fmt.Println(promptStyle.Render("Revoking USDC delegation..."))
			_, err := c.Revoke(ctx)
			return printOutcome(c, err)
		})
	},
}

var delegationCmd = &cobra.Command{
	Use:   "delegation",
	Short: "Show the current delegation on your USDC account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnectedSession(cmd.Context(), func(ctx context.Context, c *session.Controller) error {
			d, err := c.Delegation(ctx)
			if err != nil {
				return err
			}

			s := c.State()
			fmt.Println(titleStyle.Render(fmt.Sprintf("USDC delegation (%s)", s.Network.Name)))
			fmt.Println(keyValue("Owner", d.Owner))
			fmt.Println(keyValue("Token account", d.TokenAccount))
			fmt.Println(keyValue("Balance", d.Balance+" USDC"))
			if d.Delegate == "" {
				fmt.Println(keyValue("Delegate", "none"))
				return nil
			}
			fmt.Println(keyValue("Delegate", d.Delegate))
			fmt.Println(keyValue("Allowance", d.DelegatedAmount+" USDC"))
			return nil
		})
	},
}

func init() {
	approveCmd.Flags().StringVarP(&delegateAddress, "delegate", "d", "", "Delegate public key (base58)")
	approveCmd.Flags().StringVarP(&amount, "amount", "a", "", "Allowance in USDC, up to 6 decimals")
	approveCmd.Flags().BoolVar(&unlimited, "unlimited", false, "Approve the maximum amount")
	_ = approveCmd.MarkFlagRequired("delegate")
}

// withConnectedSession connects the chosen wallet, runs fn and disconnects again.
func withConnectedSession(ctx context.Context, fn func(context.Context, *session.Controller) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := newController()
	if err != nil {
		return err
	}
	if err := chooseWallet(c); err != nil {
		return err
	}
	if err := c.Connect(ctx); err != nil {
		return statusError(c, err)
	}
	defer c.Disconnect(ctx)

	s := c.State()
	fmt.Println(keyValue("Wallet", s.Selected))
	fmt.Println(keyValue("Address", s.PublicKey.String()))
	fmt.Println(keyValue("Network", string(s.Network.Name)))

	return fn(ctx, c)
}

func printOutcome(c *session.Controller, err error) error {
	if err != nil {
		return statusError(c, err)
	}
	fmt.Println(successStyle.Render(c.State().Status.Message))
	return nil
}

// statusError prefers the session's status message, which carries the user-facing wording.
func statusError(c *session.Controller, err error) error {
	if status := c.State().Status; status.Severity == session.SeverityError {
		return errors.New(status.Message)
	}
	return err
}
