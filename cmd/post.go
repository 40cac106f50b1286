package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/ledger"
)

var (
	postPreset      string
	postAmount      string
	postMode        string
	postDate        string
	postDescription string
	postComment     string
	postAttachment  string
	postContact     int64
	postDryRun      bool

	// special-rule inputs
	postInterest  string
	postGoods     bool
	postExpense   string
	postCustoms   string
	postOther     string
	postFictive   string
	postHeadcount int
	postFood      string
	postAlcohol   string
	postWithheld  string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a transaction from a preset",
	Long: "Assemble and commit a balanced posting for a preset, amount, and mode.\n" +
		"Use --dry-run to preview the lines without committing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(postAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", postAmount, err)
		}

		in, err := buildRuleInput()
		if err != nil {
			return err
		}

		// The import rule's sub-amounts must add up to the entered
		// total; checked here so the engine never sees bad input.
		if postCustoms != "" || postOther != "" {
			sum := in.CustomsInclVAT.Add(in.OtherVATFree)
			if !sum.Equal(amount) {
				return fmt.Errorf("amount %s does not equal customs %s + other %s",
					amount, in.CustomsInclVAT, in.OtherVATFree)
			}
		}

		req := &client.PostRequest{
			PresetID:      postPreset,
			Date:          postDate,
			Description:   postDescription,
			GrossAmount:   amount,
			Mode:          postMode,
			Comment:       postComment,
			AttachmentRef: postAttachment,
			ContactID:     postContact,
			RuleInput:     in,
		}

		c := client.New(flagServer, flagOwner)

		if postDryRun {
			preview, err := c.PreviewTransaction(context.Background(), req)
			if err != nil {
				return err
			}
			printLines(preview.Lines)
			fmt.Printf("Total: %s debit / %s credit\n",
				ledger.FormatAmount(preview.TotalDebit), ledger.FormatAmount(preview.TotalCredit))
			if !preview.Schablon.IsZero() {
				fmt.Printf("Schablon comparison: %s\n", ledger.FormatAmount(preview.Schablon))
			}
			return nil
		}

		txn, err := c.PostTransaction(context.Background(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Transaction committed: %s\n", txn.ID)
		printLines(txn.Lines)
		return nil
	},
}

func buildRuleInput() (ledger.RuleInput, error) {
	var in ledger.RuleInput
	var err error

	parse := func(s, name string) decimal.Decimal {
		if s == "" || err != nil {
			return decimal.Zero
		}
		var d decimal.Decimal
		d, err = decimal.NewFromString(s)
		if err != nil {
			err = fmt.Errorf("invalid %s %q: %w", name, s, err)
		}
		return d
	}

	in.InterestPortion = parse(postInterest, "interest")
	in.CustomsInclVAT = parse(postCustoms, "customs")
	in.OtherVATFree = parse(postOther, "other")
	in.FictiveVAT = parse(postFictive, "fictive VAT")
	in.FoodInclVAT = parse(postFood, "food")
	in.AlcoholInclVAT = parse(postAlcohol, "alcohol")
	in.WithheldTax = parse(postWithheld, "withheld tax")
	in.Goods = postGoods
	in.ExpenseAccount = postExpense
	in.Headcount = postHeadcount
	return in, err
}

func printLines(lines []ledger.PostingLine) {
	fmt.Printf("  %-6s %-36s %12s %12s\n", "KONTO", "TEXT", "DEBET", "KREDIT")
	for _, l := range lines {
		debit, credit := "", ""
		if !l.Debit.IsZero() {
			debit = ledger.FormatAmount(l.Debit)
		}
		if !l.Credit.IsZero() {
			credit = ledger.FormatAmount(l.Credit)
		}
		fmt.Printf("  %-6s %-36s %12s %12s\n", l.AccountNumber, l.Label, debit, credit)
	}
}

func init() {
	postCmd.Flags().StringVar(&postPreset, "preset", "", "Preset id")
	postCmd.Flags().StringVar(&postAmount, "amount", "", "Gross amount")
	postCmd.Flags().StringVar(&postMode, "mode", "standard", "Posting mode: standard, reimbursement, customer-invoice, supplier-invoice")
	postCmd.Flags().StringVar(&postDate, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	postCmd.Flags().StringVar(&postDescription, "description", "", "Transaction description")
	postCmd.Flags().StringVar(&postComment, "comment", "", "Free-form comment")
	postCmd.Flags().StringVar(&postAttachment, "attachment", "", "Attachment reference (URL or path)")
	postCmd.Flags().Int64Var(&postContact, "contact", 0, "Contact id (employee or supplier)")
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Preview the posting without committing")

	postCmd.Flags().StringVar(&postInterest, "interest", "", "Loan rule: interest portion of the payment")
	postCmd.Flags().BoolVar(&postGoods, "goods", false, "Reverse-charge rule: purchase of goods instead of services")
	postCmd.Flags().StringVar(&postExpense, "expense-account", "", "Reverse-charge rule: expense account override")
	postCmd.Flags().StringVar(&postCustoms, "customs", "", "Import rule: customs/freight sub-amount incl VAT")
	postCmd.Flags().StringVar(&postOther, "other", "", "Import rule: VAT-free other costs sub-amount")
	postCmd.Flags().StringVar(&postFictive, "fictive-vat", "", "Import rule: fictive VAT amount from the customs bill")
	postCmd.Flags().IntVar(&postHeadcount, "headcount", 0, "Representation rule: number of participants")
	postCmd.Flags().StringVar(&postFood, "food", "", "Representation rule: food and non-alcoholic drink incl VAT")
	postCmd.Flags().StringVar(&postAlcohol, "alcohol", "", "Representation rule: alcohol incl VAT")
	postCmd.Flags().StringVar(&postWithheld, "withheld-tax", "", "Payroll rule: withheld preliminary tax")

	postCmd.MarkFlagRequired("preset")
	postCmd.MarkFlagRequired("amount")
	postCmd.MarkFlagRequired("description")

	rootCmd.AddCommand(postCmd)
}
