package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"restaurant_pos/constants"
	"restaurant_pos/database"
	"restaurant_pos/helper"
	"restaurant_pos/model"
	"restaurant_pos/notify"
	"restaurant_pos/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Orders that reached one of these statuses can no longer be cancelled.
var nonCancellable = map[string]bool{
	constants.ORDER_ENTREGUE:   true,
	constants.ORDER_CANCELADO:  true,
	constants.ORDER_FINALIZADO: true,
}

type OrderDeps struct {
	Activity   *ActivityLogService
	Stock      StockConsumer
	Dispatcher *notify.Dispatcher
	Messenger  Messenger
	Hook       StatusHook
	Publisher  EventPublisher
	Receipts   ReceiptRenderer
	Mailer     Mailer
	// PublicOrderURL is the base of the tracking link printed as the
	// receipt QR code. Empty disables the QR.
	PublicOrderURL string
}

type OrderService struct {
	db   *gorm.DB
	log  *zap.Logger
	deps OrderDeps
	now  func() time.Time
}

func NewOrderService(db *gorm.DB, log *zap.Logger, deps OrderDeps) *OrderService {
	return &OrderService{
		db:   db,
		log:  log.With(zap.String("component", "order")),
		deps: deps,
		now:  time.Now,
	}
}

func (s *OrderService) List(ctx context.Context, restaurantID uuid.UUID, filter model.FilterOrder) (*model.ResponseCustom, error) {
	filter.Normalize()
	query, err := s.filtered(ctx, restaurantID, filter)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	var orders []model.Order
	err = utils.ApplyPagination(query, filter.Pagination).
		Preload("Items").
		Preload("Customer").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return &model.ResponseCustom{Rows: orders, Limit: filter.Limit, Page: filter.Page, TotalCount: total}, nil
}

func (s *OrderService) filtered(ctx context.Context, restaurantID uuid.UUID, filter model.FilterOrder) (*gorm.DB, error) {
	query := s.db.WithContext(ctx).Model(&model.Order{}).Where("restaurant_id = ?", restaurantID)
	if filter.Status != "" {
		if !utils.IsValidValueOfConstant(filter.Status, constants.ORDER_STATUSES) {
			return nil, invalid("unknown status %q", filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TipoPedido != "" {
		query = query.Where("tipo_pedido = ?", filter.TipoPedido)
	}
	if filter.CustomerID != "" {
		cid, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return nil, invalid("customer_id: %v", err)
		}
		query = query.Where("customer_id = ?", cid)
	}
	from, to, err := utils.ParseDateRange(filter.From, filter.To)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	return query, nil
}

func (s *OrderService) Get(ctx context.Context, restaurantID, id uuid.UUID) (*model.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.RestaurantID != restaurantID {
		return nil, missing("order")
	}
	return order, nil
}

func (s *OrderService) load(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Preload("Restaurant").
		Preload("PaymentMethod").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "order")
	}
	return &order, nil
}

// Create prices the items from the catalog and writes the order with its
// items in one transaction. Stock consumption and the board update run
// after commit, detached from the request.
func (s *OrderService) Create(ctx context.Context, restaurantID uuid.UUID, input model.CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, invalid("an order needs at least one item")
	}
	if input.Discount.IsNegative() {
		return nil, invalid("discount must not be negative")
	}
	db := s.db.WithContext(ctx)

	order := model.Order{
		RestaurantID:    restaurantID,
		TipoPedido:      input.TipoPedido,
		Status:          constants.ORDER_PENDENTE,
		PaymentStatus:   constants.PAYMENT_PENDENTE,
		PaymentMethodID: input.PaymentMethodID,
		Discount:        input.Discount,
		DeliveryFee:     decimal.Zero,
		Notes:           input.Notes,
		DeliveryAddress: input.DeliveryAddress,
	}

	if input.TipoPedido == constants.TIPO_COMANDA {
		if input.ComandaID == nil {
			return nil, invalid("comanda_id is required for COMANDA orders")
		}
		var comanda model.Comanda
		if err := db.Where("restaurant_id = ?", restaurantID).First(&comanda, "id = ?", *input.ComandaID).Error; err != nil {
			return nil, notFound(err, "comanda")
		}
		if comanda.Status != constants.COMANDA_ABERTA {
			return nil, conflict("comanda %q is closed", comanda.Label)
		}
		order.ComandaID = input.ComandaID
	}

	if input.PaymentMethodID != nil {
		var method model.PaymentMethod
		if err := db.Where("restaurant_id = ?", restaurantID).First(&method, "id = ?", *input.PaymentMethodID).Error; err != nil {
			return nil, notFound(err, "payment method")
		}
	}

	items, subtotal, err := s.priceItems(ctx, restaurantID, input.Items)
	if err != nil {
		return nil, err
	}
	order.Subtotal = subtotal

	create := func(tx *gorm.DB) error {
		customer, err := s.resolveCustomer(tx, restaurantID, input)
		if err != nil {
			return err
		}
		if customer != nil {
			order.CustomerID = &customer.ID
		}

		if input.TipoPedido == constants.TIPO_ENTREGA {
			switch {
			case input.DeliveryFee != nil:
				order.DeliveryFee = *input.DeliveryFee
			case customer != nil && customer.DeliveryFeeDefault != nil:
				order.DeliveryFee = *customer.DeliveryFeeDefault
			}
			if order.DeliveryAddress == "" && customer != nil {
				order.DeliveryAddress = strings.TrimSpace(customer.Address + " " + customer.Neighborhood)
			}
		}
		if order.DeliveryFee.IsNegative() {
			return invalid("delivery_fee must not be negative")
		}
		gross := order.Subtotal.Add(order.DeliveryFee)
		if order.Discount.GreaterThan(gross) {
			return invalid("discount exceeds the order value")
		}
		order.Total = gross.Sub(order.Discount)

		var last int
		if err := tx.Model(&model.Order{}).
			Where("restaurant_id = ?", restaurantID).
			Select("COALESCE(MAX(order_number), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		order.OrderNumber = last + 1
		order.Items = items

		return tx.Omit("Restaurant", "Customer", "PaymentMethod").Create(&order).Error
	}
	err = db.Transaction(create)
	if database.IsDuplicate(err) {
		// Another order took the same number between MAX and INSERT.
		s.log.Warn("order number collision, retrying",
			zap.String("restaurant_id", restaurantID.String()),
			zap.Int("order_number", order.OrderNumber))
		err = db.Transaction(create)
	}
	if database.IsDuplicate(err) {
		return nil, conflict("order number %d was taken by a concurrent order, try again", order.OrderNumber)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.Int("order_number", order.OrderNumber),
		zap.String("total", order.Total.StringFixed(2)))
	s.deps.Activity.Record(ctx, restaurantID, constants.ACTION_CREATE, "order", order.ID.String(),
		map[string]any{"order_number": order.OrderNumber, "total": order.Total})

	orderID := order.ID
	if s.deps.Stock != nil {
		s.deps.Dispatcher.Go("stock.consume", func(ctx context.Context) error {
			return s.deps.Stock.ConsumeForOrder(ctx, orderID)
		})
	}
	s.publish(restaurantID, model.OrderEvent{
		Type:        model.EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
	})

	return s.load(ctx, order.ID)
}

// priceItems snapshots names and prices from the catalog.
func (s *OrderService) priceItems(ctx context.Context, restaurantID uuid.UUID, inputs []model.OrderItemInput) ([]model.OrderItem, decimal.Decimal, error) {
	db := s.db.WithContext(ctx)

	productIDs := make([]uuid.UUID, 0, len(inputs))
	var addonIDs []uuid.UUID
	for _, it := range inputs {
		if it.Quantity <= 0 {
			return nil, decimal.Zero, invalid("item quantity must be positive")
		}
		productIDs = append(productIDs, it.ProductID)
		for _, a := range it.Addons {
			addonIDs = append(addonIDs, a.AddonID)
		}
	}

	var products []model.Product
	if err := db.Where("restaurant_id = ? AND id IN ?", restaurantID, productIDs).Find(&products).Error; err != nil {
		return nil, decimal.Zero, err
	}
	productByID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	addonByID := map[uuid.UUID]model.Addon{}
	if len(addonIDs) > 0 {
		var addons []model.Addon
		if err := db.Where("restaurant_id = ? AND id IN ?", restaurantID, addonIDs).Find(&addons).Error; err != nil {
			return nil, decimal.Zero, err
		}
		for _, a := range addons {
			addonByID[a.ID] = a
		}
	}

	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(inputs))
	for _, it := range inputs {
		product, ok := productByID[it.ProductID]
		if !ok {
			return nil, decimal.Zero, invalid("unknown product %s", it.ProductID)
		}
		if !product.Available {
			return nil, decimal.Zero, invalid("product %q is unavailable", product.Name)
		}

		unit := product.Price
		snapshot := make([]model.OrderItemAddon, 0, len(it.Addons))
		for _, a := range it.Addons {
			addon, ok := addonByID[a.AddonID]
			if !ok || !addon.Active {
				return nil, decimal.Zero, invalid("unknown or inactive addon %s", a.AddonID)
			}
			qty := a.Quantity
			if qty <= 0 {
				qty = 1
			}
			unit = unit.Add(addon.Price.Mul(decimal.NewFromInt(int64(qty))))
			snapshot = append(snapshot, model.OrderItemAddon{
				AddonID:  addon.ID,
				Name:     addon.Name,
				Price:    addon.Price,
				Quantity: qty,
			})
		}
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return nil, decimal.Zero, err
		}

		line := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   unit,
			LineTotal:   line,
			Notes:       it.Notes,
			Addons:      datatypes.JSON(raw),
		})
	}
	return items, subtotal, nil
}

// resolveCustomer takes the explicit customer id, or finds (creating if
// needed) the customer by normalized phone.
func (s *OrderService) resolveCustomer(tx *gorm.DB, restaurantID uuid.UUID, input model.CreateOrderInput) (*model.Customer, error) {
	if input.CustomerID != nil {
		var customer model.Customer
		if err := tx.Where("restaurant_id = ?", restaurantID).First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			return nil, notFound(err, "customer")
		}
		return &customer, nil
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		if input.TipoPedido == constants.TIPO_ENTREGA && input.DeliveryAddress == "" {
			return nil, invalid("delivery orders need a customer or a delivery_address")
		}
		return nil, nil
	}

	phone, err := helper.NormalizePhone(input.CustomerPhone)
	if err != nil {
		return nil, invalid("customer_phone: %v", err)
	}
	customer := model.Customer{RestaurantID: restaurantID, Phone: phone}
	err = tx.Where("restaurant_id = ? AND phone = ?", restaurantID, phone).
		Attrs(model.Customer{Name: strings.TrimSpace(input.CustomerName)}).
		FirstOrCreate(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateStatus writes the new status and answers as soon as the write is
// done. The automation hook and the customer message are dispatched in the
// background and only when the status actually changed.
func (s *OrderService) UpdateStatus(ctx context.Context, restaurantID uuid.UUID, input model.UpdateOrderStatusInput) (*model.Order, error) {
	if input.OrderID == "" || input.NewStatus == "" {
		return nil, invalid("orderId and newStatus are required")
	}
	orderID, err := uuid.Parse(input.OrderID)
	if err != nil {
		return nil, invalid("orderId: %v", err)
	}
	if !utils.IsValidValueOfConstant(input.NewStatus, constants.ORDER_STATUSES) {
		return nil, invalid("unknown status %q", input.NewStatus)
	}
	if input.RestaurantID != "" && input.RestaurantID != restaurantID.String() {
		return nil, fmt.Errorf("%w: restaurant mismatch", ErrForbidden)
	}

	var current model.Order
	if err := s.db.WithContext(ctx).Select("id", "restaurant_id", "status", "order_number").First(&current, "id = ?", orderID).Error; err != nil {
		return nil, notFound(err, "order")
	}
	if current.RestaurantID != restaurantID {
		return nil, fmt.Errorf("%w: order belongs to another restaurant", ErrForbidden)
	}
	oldStatus := current.Status

	updates := map[string]any{"status": input.NewStatus}
	if input.NewStatus == constants.ORDER_CANCELADO && oldStatus != constants.ORDER_CANCELADO {
		updates["cancelled_at"] = s.now()
	}
	if err := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		return nil, err
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if oldStatus == input.NewStatus {
		return order, nil
	}

	s.log.Info("order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("old_status", oldStatus),
		zap.String("new_status", input.NewStatus))
	s.deps.Activity.Record(ctx, restaurantID, constants.ACTION_STATUS_CHANGE, "order", orderID.String(),
		map[string]string{"old_status": oldStatus, "new_status": input.NewStatus})
	s.publish(restaurantID, model.OrderEvent{
		Type:        model.EventOrderStatusChanged,
		OrderID:     orderID,
		OrderNumber: order.OrderNumber,
		Status:      input.NewStatus,
	})

	if input.RestaurantID != "" && s.deps.Hook != nil {
		ev := notify.StatusEvent{
			Event:        notify.EventOrderStatusChanged,
			OrderID:      orderID.String(),
			OrderNumber:  order.OrderNumber,
			RestaurantID: input.RestaurantID,
			OldStatus:    oldStatus,
			NewStatus:    input.NewStatus,
			Timestamp:    s.now().UTC(),
		}
		s.deps.Dispatcher.Go("automation.status_changed", func(ctx context.Context) error {
			res, err := s.deps.Hook.OrderStatusChanged(ctx, ev)
			if err == nil && res.IsSkipped() {
				s.log.Debug("automation skipped", zap.String("reason", res.Reason))
			}
			return err
		})
	}

	switch input.NewStatus {
	case constants.ORDER_EM_PREPARO:
		s.deps.Dispatcher.Go("whatsapp.preparing", func(ctx context.Context) error {
			return s.notifyPreparing(ctx, orderID)
		})
	case constants.ORDER_SAIU_PARA_ENTREGA:
		s.deps.Dispatcher.Go("whatsapp.out_for_delivery", func(ctx context.Context) error {
			return s.notifyOutForDelivery(ctx, orderID)
		})
	}

	return order, nil
}

func (s *OrderService) notifyPreparing(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Customer == nil || order.Customer.Phone == "" || s.deps.Messenger == nil {
		return nil
	}

	text := fmt.Sprintf("Olá %s! Seu pedido #%d%s está sendo preparado.",
		firstName(order.Customer.Name), order.OrderNumber, restaurantSuffix(order))
	res, err := s.deps.Messenger.SendText(ctx, order.Customer.Phone, text)
	if err != nil {
		return err
	}
	s.logResult("preparing message", orderID, res)
	return nil
}

func (s *OrderService) notifyOutForDelivery(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Customer == nil || order.Customer.Phone == "" || s.deps.Messenger == nil {
		return nil
	}

	n := order.OrderNumber
	menu := notify.Menu{
		Title:       fmt.Sprintf("Pedido #%d saiu para entrega", n),
		Description: fmt.Sprintf("Olá %s! Seu pedido #%d%s está a caminho. Quando chegar, nos avise:", firstName(order.Customer.Name), n, restaurantSuffix(order)),
		ButtonText:  "Responder",
		Options: []notify.MenuOption{
			{ID: fmt.Sprintf("recebi_%d", n), Title: "Recebi meu pedido", Description: fmt.Sprintf("Pedido #%d", n)},
			{ID: fmt.Sprintf("problema_%d", n), Title: "Tive um problema", Description: fmt.Sprintf("Pedido #%d", n)},
		},
	}
	res, err := s.deps.Messenger.SendMenu(ctx, order.Customer.Phone, menu)
	if err != nil {
		return err
	}
	s.logResult("out for delivery menu", orderID, res)
	return nil
}

// Cancel resolves the order by id, or by number (and optionally the
// customer's phone) newest first, then moves it to CANCELADO.
func (s *OrderService) Cancel(ctx context.Context, restaurantID uuid.UUID, input model.CancelOrderInput) (*model.CancelOrderResult, error) {
	order, err := s.resolveForCancel(ctx, restaurantID, input)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	if nonCancellable[previous] {
		return nil, fmt.Errorf("%w: status %s", ErrNotCancellable, previous)
	}

	now := s.now()
	err = s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
		"status":       constants.ORDER_CANCELADO,
		"cancelled_at": now,
	}).Error
	if err != nil {
		return nil, err
	}

	s.log.Info("order cancelled", zap.String("order_id", order.ID.String()), zap.String("previous_status", previous))
	s.deps.Activity.Record(ctx, restaurantID, constants.ACTION_CANCEL, "order", order.ID.String(),
		map[string]string{"previous_status": previous})
	s.publish(restaurantID, model.OrderEvent{
		Type:        model.EventOrderStatusChanged,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      constants.ORDER_CANCELADO,
	})

	updated, err := s.load(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &model.CancelOrderResult{Order: updated, PreviousStatus: previous, Status: constants.ORDER_CANCELADO}, nil
}

func (s *OrderService) resolveForCancel(ctx context.Context, restaurantID uuid.UUID, input model.CancelOrderInput) (*model.Order, error) {
	db := s.db.WithContext(ctx)
	if input.OrderID != "" {
		id, err := uuid.Parse(input.OrderID)
		if err != nil {
			return nil, invalid("order_id: %v", err)
		}
		var order model.Order
		if err := db.Where("restaurant_id = ?", restaurantID).First(&order, "id = ?", id).Error; err != nil {
			return nil, notFound(err, "order")
		}
		return &order, nil
	}
	if input.OrderNumber <= 0 {
		return nil, invalid("order_id or order_number is required")
	}

	query := db.Model(&model.Order{}).Where("orders.restaurant_id = ? AND orders.order_number = ?", restaurantID, input.OrderNumber)
	if input.CustomerPhone != "" {
		phone, err := helper.NormalizePhone(input.CustomerPhone)
		if err != nil {
			return nil, invalid("customer_phone: %v", err)
		}
		query = query.Joins("JOIN customers ON customers.id = orders.customer_id").Where("customers.phone = ?", phone)
	}
	var order model.Order
	if err := query.Order("orders.created_at DESC").First(&order).Error; err != nil {
		return nil, notFound(err, "order")
	}
	return &order, nil
}

// PrintData assembles the receipt view of an order.
func (s *OrderService) PrintData(ctx context.Context, restaurantID, id uuid.UUID) (*model.PrintData, error) {
	order, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	data := &model.PrintData{
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		CreatedAt:     order.CreatedAt,
		TipoPedido:    order.TipoPedido,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		Discount:      order.Discount,
		Total:         order.Total,
		Notes:         order.Notes,
	}
	if order.Restaurant != nil {
		data.Restaurant = model.PrintRestaurant{
			Name:    order.Restaurant.Name,
			Phone:   order.Restaurant.Phone,
			Address: order.Restaurant.Address,
		}
	}
	if order.PaymentMethod != nil {
		data.PaymentMethod = order.PaymentMethod.Name
	}
	if order.Customer != nil {
		address := order.DeliveryAddress
		if address == "" {
			address = order.Customer.Address
		}
		data.Customer = &model.PrintCustomer{
			Name:         order.Customer.Name,
			Phone:        order.Customer.Phone,
			Address:      address,
			Neighborhood: order.Customer.Neighborhood,
		}
	}
	for _, it := range order.Items {
		var addons []model.OrderItemAddon
		if len(it.Addons) > 0 {
			if err := json.Unmarshal(it.Addons, &addons); err != nil {
				s.log.Warn("bad addon snapshot", zap.String("order_item_id", it.ID.String()), zap.Error(err))
			}
		}
		data.Items = append(data.Items, model.PrintItem{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
			Notes:     it.Notes,
			Addons:    addons,
		})
	}
	if s.deps.PublicOrderURL != "" {
		data.QRPayload = fmt.Sprintf("%s/%s", s.deps.PublicOrderURL, order.ID)
	}
	return data, nil
}

func (s *OrderService) RenderPDF(ctx context.Context, restaurantID, id uuid.UUID) ([]byte, *model.PrintData, error) {
	data, err := s.PrintData(ctx, restaurantID, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.deps.Receipts.Render(data)
	if err != nil {
		return nil, nil, fmt.Errorf("render receipt: %w", err)
	}
	return pdf, data, nil
}

type SendPDFResult struct {
	WhatsApp notify.Result  `json:"whatsapp"`
	Email    *notify.Result `json:"email,omitempty"`
}

// SendCustomerPDF renders the receipt and sends it to the customer over
// WhatsApp, and by email when the customer has one.
func (s *OrderService) SendCustomerPDF(ctx context.Context, restaurantID, id uuid.UUID) (*SendPDFResult, error) {
	order, err := s.Get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if order.Customer == nil || order.Customer.Phone == "" {
		return nil, invalid("order has no customer phone")
	}

	pdf, data, err := s.RenderPDF(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	fileName := fmt.Sprintf("pedido-%d.pdf", data.OrderNumber)

	result := &SendPDFResult{}
	result.WhatsApp, err = s.deps.Messenger.SendDocument(ctx, order.Customer.Phone, notify.Document{
		FileName: fileName,
		MimeType: "application/pdf",
		Caption:  fmt.Sprintf("Comprovante do pedido #%d", data.OrderNumber),
		Content:  pdf,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if order.Customer.Email != nil && *order.Customer.Email != "" && s.deps.Mailer != nil {
		body := fmt.Sprintf("<p>Olá %s,</p><p>Segue em anexo o comprovante do pedido #%d.</p>",
			firstName(order.Customer.Name), data.OrderNumber)
		res, err := s.deps.Mailer.Send(ctx, *order.Customer.Email,
			fmt.Sprintf("Comprovante do pedido #%d", data.OrderNumber), body,
			utils.Attachment{FileName: fileName, Content: pdf})
		if err != nil {
			s.log.Warn("receipt email failed", zap.Error(err), zap.String("order_id", id.String()))
			res = notify.Skipped("email failed")
		}
		result.Email = &res
	}
	return result, nil
}

// Export renders the filtered orders as an xlsx workbook.
func (s *OrderService) Export(ctx context.Context, restaurantID uuid.UUID, filter model.FilterOrder) ([]byte, error) {
	query, err := s.filtered(ctx, restaurantID, filter)
	if err != nil {
		return nil, err
	}
	var orders []model.Order
	if err := query.Preload("Customer").Order("order_number").Find(&orders).Error; err != nil {
		return nil, err
	}
	buf, err := utils.OrdersReport(orders)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *OrderService) publish(restaurantID uuid.UUID, ev model.OrderEvent) {
	if s.deps.Publisher == nil {
		return
	}
	s.deps.Dispatcher.Go("realtime.publish", func(ctx context.Context) error {
		return s.deps.Publisher.PublishOrderEvent(ctx, restaurantID, ev)
	})
}

func (s *OrderService) logResult(what string, orderID uuid.UUID, res notify.Result) {
	if res.IsSkipped() {
		s.log.Info(what+" skipped", zap.String("order_id", orderID.String()), zap.String("reason", res.Reason))
		return
	}
	s.log.Info(what+" sent", zap.String("order_id", orderID.String()))
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return "cliente"
}

func restaurantSuffix(order *model.Order) string {
	if order.Restaurant == nil || order.Restaurant.Name == "" {
		return ""
	}
	return " do " + order.Restaurant.Name
}
