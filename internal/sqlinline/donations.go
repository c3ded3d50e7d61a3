package sqlinline

const QInsertDonation = `--sql 7863abb6-fc9e-43ff-86ff-9c1e4355aa4a
insert into donations (id, user_id, event_id, direction, description, date)
values ($1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::date);
`

const QInsertDonationItem = `--sql 7e59515f-ae5c-46b0-bf39-b86656f0721f
insert into donation_items (item_id, donation_id, quantity)
values ($1::uuid, $2::uuid, $3::numeric);
`

const QSelectDonationByID = `--sql d5b633b3-243d-40f5-bcaf-834f5167ead2
select id, user_id, event_id, direction, description, date
from donations
where id = $1::uuid
limit 1;
`

const QListDonationsByEvent = `--sql f34ef032-a357-45ac-951b-63d3c5647399
select id, user_id, event_id, direction, description, date
from donations
where event_id = $1::uuid
order by date desc, id;
`

const QListDonationItems = `--sql 1a37806f-9acc-4eff-8d62-5a92fed19c2c
select di.donation_id, di.item_id, di.quantity::float8, i.description, i.item_type
from donation_items di
join items i on i.id = di.item_id
where di.donation_id = $1::uuid
order by di.donation_id, di.item_id;
`

const QUpdateDonationItemQuantity = `--sql 0568541a-489a-4bee-910e-c706cddb1f6c
update donation_items
set quantity = $3::numeric
where donation_id = $1::uuid
  and item_id = $2::uuid;
`

const QDeleteDonationItem = `--sql 78a89ead-c28a-488a-bff3-ca87712320e3
delete from donation_items
where donation_id = $1::uuid
  and item_id = $2::uuid;
`

const QCountDonationItems = `--sql 4e1114e2-139f-49ef-b941-496f9ff22cb5
select count(*)
from donation_items
where donation_id = $1::uuid;
`

const QDeleteDonation = `--sql 34aa05fb-24a3-4fbe-a46e-70a795579498
delete from donations
where id = $1::uuid;
`

const QEventItemTotals = `--sql f5278bb4-fdfb-480e-9b40-cce69d264395
select i.id, i.description, i.item_type, d.direction, sum(di.quantity)::float8
from donations d
join donation_items di on di.donation_id = d.id
join items i on i.id = di.item_id
where d.event_id = $1::uuid
group by i.id, i.description, i.item_type, d.direction
order by i.description, i.id, d.direction;
`
