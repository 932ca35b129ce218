package theme_test

import (
	"fmt"

	"github.com/karto-app/karto/pkg/theme"
)

func ExampleDefaultSheetTheme() {
	sheet := theme.DefaultSheetTheme()
	fmt.Println(sheet.GradientStart.Hex(), sheet.GradientEnd.Hex())
	fmt.Println(sheet.HandleAreaHeight())
	// Output:
	// #1f3b73ff #6d28d9ff
	// 34
}
