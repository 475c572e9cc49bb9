package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/bookstore/internal/model"
	"example.com/bookstore/internal/service"
)

type OrdersHTTP struct {
	S service.OrderService
}

func NewOrdersHTTP(s service.OrderService) *OrdersHTTP { return &OrdersHTTP{S: s} }

type createOrderReq struct {
	Customer struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	} `json:"customer"`
	Total *float64      `json:"total" binding:"required,gte=-90000000000000,lte=90000000000000"`
	Items []cartLineReq `json:"items" binding:"required,dive"`
}

type cartLineReq struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"gt=0"`
}

func (r createOrderReq) input() service.PlaceOrderInput {
	in := service.PlaceOrderInput{
		Customer: service.Customer{
			Name:    r.Customer.Name,
			Email:   r.Customer.Email,
			Phone:   r.Customer.Phone,
			Address: r.Customer.Address,
		},
		TotalCents: cents(*r.Total),
		Lines:      make([]service.CartLine, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		in.Lines = append(in.Lines, service.CartLine{BookID: it.ID, Quantity: it.Quantity})
	}
	return in
}

type orderJSON struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type orderItemJSON struct {
	BookTitle string  `json:"book_title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderDetailJSON struct {
	orderJSON
	Items []orderItemJSON `json:"items"`
}

func toOrderJSON(o model.Order) orderJSON {
	return orderJSON{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: price(o.TotalCents),
		Status:      o.Status,
		CreatedAt:   timestamp(o.CreatedAt),
	}
}

func (h *OrdersHTTP) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.S.PlaceOrder(c.Request.Context(), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order_id": id})
}

func (h *OrdersHTTP) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.S.GetOrder(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	out := orderDetailJSON{orderJSON: toOrderJSON(d.Order), Items: make([]orderItemJSON, 0, len(d.Lines))}
	for _, l := range d.Lines {
		out.Items = append(out.Items, orderItemJSON{BookTitle: l.BookTitle, Quantity: l.Quantity, Price: price(l.PriceCents)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrdersHTTP) List(c *gin.Context) {
	orders, err := h.S.ListOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderJSON(o))
	}
	c.JSON(http.StatusOK, out)
}

type statusReq struct {
	Status *string `json:"status" binding:"required"`
}

func (h *OrdersHTTP) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.S.SetOrderStatus(c.Request.Context(), id, *req.Status); err != nil {
		fail(c, err)
		return
	}
	message(c, http.StatusOK, "Order status updated successfully")
}
