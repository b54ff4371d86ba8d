package services

// Services defined in this package:
// - FeeTypeService: CRUD for named fee categories
// - FeeStructureService: per-class/year fee obligation configuration
// - VoucherService: voucher lifecycle and line-item mutations
// - PaymentService: applies payments and rederives voucher status
// - GenerationService: idempotent bulk voucher generation for a period
// - StatementService: read-only projection for statement rendering
