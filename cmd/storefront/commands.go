package main

import (
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/spf13/cobra"
)

func newProductsCommand() *cobra.Command {

	var (
		segment                   string
		categories, brands, price []string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, or browse a segment with filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			if segment == "" {
				products, err := a.catalog.ListProducts(cmd.Context())
				return render(cmd.OutOrStdout(), products, err)
			}

			seg, ok := catalog.ParseSegment(segment)
			if !ok {
				return render(cmd.OutOrStdout(), nil, errors.AddValidationError("segment", "must be one of Mens, Womens, Kids, Home"))
			}

			filter := catalog.NewFilter(categories, brands, price)

			result, err := a.catalog.Browse(cmd.Context(), seg, filter)
			return render(cmd.OutOrStdout(), result, err)
		},
	}

	cmd.Flags().StringVar(&segment, "segment", "", "Mens, Womens, Kids or Home")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "category filter (repeatable)")
	cmd.Flags().StringSliceVar(&brands, "brand", nil, "brand filter (repeatable)")
	cmd.Flags().StringSliceVar(&price, "price", nil, "price bucket: under-5000, 5000-10000, over-10000 (repeatable)")

	return cmd
}

func newProductCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product with its sizes and cart/wishlist status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := appFrom(cmd).catalog.Detail(cmd.Context(), args[0])
			return render(cmd.OutOrStdout(), detail, err)
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := appFrom(cmd).catalog.Search(cmd.Context(), args[0])
			return render(cmd.OutOrStdout(), products, err)
		},
	}
}

func newCartCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), appFrom(cmd).cart.View(cmd.Context()), nil)
		},
	}

	var size string
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			product, err := a.catalog.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return render(cmd.OutOrStdout(), nil, err)
			}

			if _, err := a.cart.Add(cmd.Context(), product, size); err != nil {
				return render(cmd.OutOrStdout(), nil, err)
			}

			return render(cmd.OutOrStdout(), a.cart.View(cmd.Context()), nil)
		},
	}
	add.Flags().StringVar(&size, "size", "", "S, M, L, XL or XXL (not used for Home products)")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if _, err := a.cart.Remove(cmd.Context(), args[0]); err != nil {
				return render(cmd.OutOrStdout(), nil, err)
			}
			return render(cmd.OutOrStdout(), a.cart.View(cmd.Context()), nil)
		},
	}

	var quantity int
	setQuantity := &cobra.Command{
		Use:   "set-quantity <product-id>",
		Short: "Set the quantity of a product; values below 1 are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if _, err := a.cart.SetQuantity(cmd.Context(), args[0], quantity); err != nil {
				return render(cmd.OutOrStdout(), nil, err)
			}
			return render(cmd.OutOrStdout(), a.cart.View(cmd.Context()), nil)
		},
	}
	setQuantity.Flags().IntVar(&quantity, "quantity", 1, "new quantity")

	cmd.AddCommand(add, remove, setQuantity)

	return cmd
}

func newWishlistCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := appFrom(cmd).wishlist.Items(cmd.Context())
			return render(cmd.OutOrStdout(), models.WishlistView{Items: entries}, nil)
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add the product to the wishlist, or remove it if present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			var product *models.Product
			if entry, ok := a.wishlist.Find(cmd.Context(), args[0]); ok {
				product = &entry.Product
			} else {
				p, err := a.catalog.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return render(cmd.OutOrStdout(), nil, err)
				}
				product = p
			}

			in, err := a.wishlist.Toggle(cmd.Context(), product)
			return render(cmd.OutOrStdout(), models.ToggleWishlistResponse{ProductID: args[0], InWishlist: in}, err)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := appFrom(cmd).wishlist.Remove(cmd.Context(), args[0])
			return render(cmd.OutOrStdout(), models.WishlistView{Items: entries}, err)
		},
	}

	move := &cobra.Command{
		Use:   "move-to-cart <product-id>",
		Short: "Move a wishlisted product into the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := appFrom(cmd).wishlist.MoveToCart(cmd.Context(), args[0])
			return render(cmd.OutOrStdout(), result, err)
		},
	}

	cmd.AddCommand(toggle, remove, move)

	return cmd
}

func newCheckoutCommand() *cobra.Command {

	var details models.ShippingDetails

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := appFrom(cmd).checkout.Submit(cmd.Context(), &details)
			return render(cmd.OutOrStdout(), resp, err)
		},
	}

	cmd.Flags().StringVar(&details.Name, "name", "", "recipient name")
	cmd.Flags().StringVar(&details.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&details.Address, "address", "", "street address")
	cmd.Flags().StringVar(&details.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&details.City, "city", "", "city")
	cmd.Flags().StringVar(&details.ZipCode, "zip", "", "zip code")

	return cmd
}

func newOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Show the confirmation of the last placed order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := appFrom(cmd).orders.Confirmation(cmd.Context(), args[0])
			return render(cmd.OutOrStdout(), order, err)
		},
	}
}

func newLoginCommand() *cobra.Command {

	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := appFrom(cmd).auth.Login(cmd.Context(), &req)
			return render(cmd.OutOrStdout(), resp, err)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := appFrom(cmd).auth.Logout(cmd.Context())
			return render(cmd.OutOrStdout(), models.SessionResponse{LoggedIn: false}, err)
		},
	}
}

func newSignupCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account with an emailed one-time password",
	}

	var sendReq models.SendOTPRequest
	send := &cobra.Command{
		Use:   "send-otp",
		Short: "Email a one-time password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := appFrom(cmd).auth.SendOTP(cmd.Context(), &sendReq)
			return render(cmd.OutOrStdout(), resp, err)
		},
	}
	send.Flags().StringVar(&sendReq.Email, "email", "", "account email")

	var verifyReq models.VerifyOTPRequest
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Verify the one-time password and create the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := appFrom(cmd).auth.VerifyOTP(cmd.Context(), &verifyReq)
			return render(cmd.OutOrStdout(), resp, err)
		},
	}
	verify.Flags().StringVar(&verifyReq.Email, "email", "", "account email")
	verify.Flags().StringVar(&verifyReq.OTP, "otp", "", "one-time password")
	verify.Flags().StringVar(&verifyReq.Password, "password", "", "new password")
	verify.Flags().StringVar(&verifyReq.Username, "username", "", "display name")

	cmd.AddCommand(send, verify)

	return cmd
}

func newProfileCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := appFrom(cmd).auth.CurrentUser(cmd.Context())
			return render(cmd.OutOrStdout(), user, err)
		},
	}

	var req models.UpdateProfileRequest
	update := &cobra.Command{
		Use:   "update",
		Short: "Update the profile of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := appFrom(cmd).auth.UpdateProfile(cmd.Context(), &req)
			return render(cmd.OutOrStdout(), resp, err)
		},
	}
	update.Flags().StringVar(&req.Username, "username", "", "display name")
	update.Flags().StringVar(&req.Email, "email", "", "email")
	update.Flags().StringVar(&req.Address, "address", "", "postal address")
	update.Flags().StringVar(&req.Mobile, "mobile", "", "mobile number")

	cmd.AddCommand(update)

	return cmd
}
